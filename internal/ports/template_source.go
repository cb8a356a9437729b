package ports

// TemplateSource provides the browser page the generated code is spliced into.
type TemplateSource interface {
	LoadTemplate() (string, error)
}
