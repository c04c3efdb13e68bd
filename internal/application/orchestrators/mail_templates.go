package orchestrators

import (
	"bytes"
	"fmt"
	"html/template"
)

var (
	resetMail = template.Must(template.New("reset").Parse(`<p>Hi {{.Name}},</p>
<p>Someone asked to reset the password for your Flotenn admin account. The link below works once and expires in one hour.</p>
<p><a href="{{.Link}}">Choose a new password</a></p>
<p>If you did not ask for this you can ignore this email.</p>`))

	enquiryMail = template.Must(template.New("enquiry").Parse(`<h2>New enquiry{{with .Subject}}: {{.}}{{end}}</h2>
<table>
<tr><td><b>Name</b></td><td>{{.Name}}</td></tr>
<tr><td><b>Phone</b></td><td>{{.Phone}}</td></tr>
{{with .Email}}<tr><td><b>Email</b></td><td>{{.}}</td></tr>{{end}}
{{with .City}}<tr><td><b>City</b></td><td>{{.}}</td></tr>{{end}}
</table>
{{with .Message}}<p style="white-space:pre-wrap">{{.}}</p>{{end}}
<p><a href="{{.AdminURL}}">Open in the admin</a></p>`))

	bookingMail = template.Must(template.New("booking").Parse(`<h2>New booking request: {{.ServiceType}}</h2>
<table>
<tr><td><b>Customer</b></td><td>{{.CustomerName}}</td></tr>
{{with .CustomerPhone}}<tr><td><b>Phone</b></td><td>{{.}}</td></tr>{{end}}
{{with .CustomerEmail}}<tr><td><b>Email</b></td><td>{{.}}</td></tr>{{end}}
{{with .VehicleDetails}}<tr><td><b>Vehicle</b></td><td>{{.}}</td></tr>{{end}}
<tr><td><b>Preferred date</b></td><td>{{.Date}}</td></tr>
</table>
{{with .Notes}}<p style="white-space:pre-wrap">{{.}}</p>{{end}}
<p><a href="{{.AdminURL}}">Open in the admin</a></p>`))
)

func renderMail(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s email: %w", t.Name(), err)
	}
	return buf.String(), nil
}
