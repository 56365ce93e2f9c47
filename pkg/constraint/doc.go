// Package constraint describes declarative field constraints and the
// sources they are read from.
//
// A Descriptor names a constraint kind ("nullable", "maxSize", "range")
// for one property, with its parameters stored under canonical keys:
// ParamRegex, ParamMin, ParamMax and ParamValue. Constraints keeps the
// descriptors of one type grouped by property, in declaration order.
//
// Three sources are provided:
//
//   - Registry, filled in code, from struct tags or from YAML.
//   - LoadYAML, which keeps the document order of types and properties.
//   - FromStruct, which reads `constraints:"..."` struct tags.
//
// Tag syntax separates entries with ';' so regular expressions may contain
// commas. Ranges are written "min..max":
//
//	type Book struct {
//	    Title string `form:"title" constraints:"nullable=false;maxSize=100"`
//	    Pages int    `constraints:"range=1..5000"`
//	}
package constraint
