package email

// PreviewData holds sample template data, keyed by template name, for
// rendering emails locally and in tests.
var PreviewData = map[Template]map[string]string{
	TemplateWelcome: {
		"UserFirstName": "Anna",
		"Username":      "chef.anna",
	},
}
