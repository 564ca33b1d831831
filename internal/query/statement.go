package query

// Statement pairs SQL text with the named parameters it references.
// Placeholders use the @name form and every bound value travels in Params,
// never inlined into the text.
type Statement struct {
	SQL    string
	Params map[string]any
}
