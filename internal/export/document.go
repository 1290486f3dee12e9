package export

import (
	"html/template"
	"strings"
)

// DocumentTitle is the title of the print document
const DocumentTitle = "ATS-Ready Resume"

const printTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
  @page { size: letter; margin: 0; }
  body { font-family: "Times New Roman", Times, serif; padding: 1in; font-size: 11pt; line-height: 1.4; color: #000; }
  pre { white-space: pre-wrap; word-wrap: break-word; font-family: inherit; margin: 0; }
  @media print { body { padding: 1in; } }
</style>
</head>
<body>
<pre>{{.Content}}</pre>
</body>
</html>
`

var printTmpl = template.Must(template.New("print").Parse(printTemplate))

// printData is passed to the print document template
type printData struct {
	Title   string
	Content string
}

// PrintDocument returns a standalone HTML page containing the resume text in a
// serif font with fixed margins. The text is escaped, never interpreted as markup.
func PrintDocument(text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", &TemplateError{Message: "resume text is empty"}
	}

	var out strings.Builder
	if err := printTmpl.Execute(&out, printData{Title: DocumentTitle, Content: text}); err != nil {
		return "", &TemplateError{
			Message: "failed to execute print template",
			Cause:   err,
		}
	}
	return out.String(), nil
}
