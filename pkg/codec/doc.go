// Package codec holds named output encoders.
//
// A Registry maps case-insensitive codec names to string transforms. The
// names "none" and "" always mean identity. Requesting any other unknown
// name fails with ErrUnknownCodec so that content is never written
// unescaped by accident.
//
//	reg := codec.NewRegistry()
//	out, err := reg.Encode("HTML", `<b>"hi"</b>`)
//	// out == "&lt;b&gt;&#34;hi&#34;&lt;/b&gt;"
//
// Built-in codecs: HTML, JavaScript, URL, XML and SafeHTML. SafeHTML keeps
// user-generated markup but strips everything a bluemonday UGC policy
// rejects.
package codec
