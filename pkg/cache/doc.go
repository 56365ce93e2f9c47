// Package cache holds a small generic LRU cache used to keep rendered
// artifacts, such as client validation scripts, between requests.
//
//	scripts := cache.New[string, string](128)
//	scripts.Put("book|Book", rendered)
//	if s, ok := scripts.Get("book|Book"); ok {
//		...
//	}
//
// All methods are safe for concurrent use.
package cache
