// Package render iterates error containers and writes them out as an HTML
// list or an XML document.
//
// Errors are visited container by container, each container in insertion
// order. Without a field filter every error is visited, global ones
// included; with one only the field errors for that field are.
//
// Message text comes from a message resolver. List output encodes each
// message with Options.Codec (HTML unless set, "none" to disable). XML
// output relies on encoding/xml to escape attribute values.
package render
