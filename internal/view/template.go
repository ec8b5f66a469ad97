package view

import (
	"html/template"
	"io"
)

var pageTmpl = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>Student Management</title>
<style>
*{box-sizing:border-box;margin:0;padding:0}
body{font-family:-apple-system,BlinkMacSystemFont,'Segoe UI',Roboto,sans-serif;background:#f5f5f5;color:#333;line-height:1.6}
.container{max-width:1100px;margin:0 auto;padding:20px;display:grid;grid-template-columns:1fr 2fr;gap:20px}
section{background:#fff;border-radius:8px;padding:20px;box-shadow:0 1px 3px rgba(0,0,0,.1)}
.form-group{margin-bottom:14px}
.form-group label{display:block;font-size:13px;font-weight:500;margin-bottom:4px;color:#555}
.form-group input{width:100%;padding:8px 12px;border:1px solid #ddd;border-radius:6px;font-size:14px}
.btn{display:inline-block;padding:8px 16px;border-radius:6px;border:none;cursor:pointer;font-size:14px}
.btn-primary{background:#667eea;color:#fff}
.btn-secondary{background:#e5e7eb;color:#374151}
.btn-edit{background:#f59e0b;color:#fff}
.btn-danger{background:#ef4444;color:#fff}
.list-header{display:flex;justify-content:space-between;align-items:center;margin-bottom:12px}
.student-card{display:flex;justify-content:space-between;border:1px solid #eee;border-radius:6px;padding:12px;margin-bottom:10px}
.student-actions form{display:inline}
.empty-state{text-align:center;color:#888;padding:30px}
.loading{color:#667eea;margin-bottom:10px}
.error-message{background:#fef2f2;color:#b91c1c;border:1px solid #fecaca;border-radius:6px;padding:10px;margin-bottom:10px}
.success-message{display:none;background:#dcfce7;color:#166534;border-radius:6px;padding:10px;margin-bottom:10px}
.success-message.show{display:block}
</style>
</head>
<body>
<div class="container">
<section class="form-section" id="{{.SectionID}}">
<h2 id="form-title">{{.Page.Mode.Title}}</h2>
<form id="student-form" method="post" action="/students">
<input type="hidden" id="student-id" name="student-id" value="{{.Page.Fields.ID}}">
<div class="form-group"><label for="firstName">First Name *</label>
<input type="text" id="firstName" name="firstName" value="{{.Page.Fields.FirstName}}" required{{if .Page.Mode.Editing}} autofocus{{end}}></div>
<div class="form-group"><label for="lastName">Last Name *</label>
<input type="text" id="lastName" name="lastName" value="{{.Page.Fields.LastName}}" required></div>
<div class="form-group"><label for="email">Email</label>
<input type="email" id="email" name="email" value="{{.Page.Fields.Email}}"></div>
<div class="form-group"><label for="age">Age</label>
<input type="number" id="age" name="age" value="{{.Page.Fields.Age}}"></div>
<div class="form-group"><label for="course">Course</label>
<input type="text" id="course" name="course" value="{{.Page.Fields.Course}}"></div>
<button type="submit" id="submit-btn" class="btn btn-primary">{{.Page.Mode.SubmitLabel}}</button>
</form>
{{if .Page.Mode.CancelVisible}}<form method="post" action="/form/cancel" style="display:inline">
<button type="submit" id="cancel-btn" class="btn btn-secondary">Cancel</button>
</form>{{end}}
</section>
<section class="list-section">
<div class="list-header">
<h2>Students</h2>
<form method="post" action="/refresh"><button type="submit" id="refresh-btn" class="btn btn-secondary">🔄 Refresh</button></form>
</div>
{{if .Page.Loading}}<div id="loading" class="loading">Loading...</div>{{end}}
{{if .Page.ErrorVisible}}<div id="error-message" class="error-message">{{.Page.Error}}</div>{{end}}
{{with .Page.Success}}<div id="success-message" class="success-message{{if .Visible}} show{{end}}">{{.Message}}</div>{{end}}
<div id="students-list">
{{- if .Page.List.Empty}}
<div class="empty-state"><p>{{.Page.List.Placeholder}}</p></div>
{{- else}}{{range .Page.List.Cards}}
<div class="student-card" data-id="{{.ID}}">
<div class="student-info">
<h3>{{.Title}}</h3>
<p><strong>Email:</strong> {{.Email}}</p>
<p><strong>Age:</strong> {{.Age}}</p>
<p><strong>Course:</strong> {{.Course}}</p>
</div>
<div class="student-actions">
<form method="post" action="/students/{{.ID}}/edit"><button type="submit" class="btn btn-edit">✏️ Edit</button></form>
<form method="get" action="/students/{{.ID}}/delete"><button type="submit" class="btn btn-danger">🗑️ Delete</button></form>
</div>
</div>
{{- end}}{{end}}
</div>
</section>
</div>
</body>
</html>
`))

var confirmTmpl = template.Must(template.New("confirm").Parse(`<!DOCTYPE html>
<html lang="en">
<head><meta charset="UTF-8"><title>Confirm</title></head>
<body>
<p>{{.Prompt}}</p>
<form method="post" action="/students/{{.ID}}/delete">
<button type="submit" name="confirm" value="yes">OK</button>
<button type="submit" name="confirm" value="no">Cancel</button>
</form>
</body>
</html>
`))

// Render writes the full page for s.
func Render(w io.Writer, s Snapshot) error {
	return pageTmpl.Execute(w, struct {
		SectionID string
		Page      Snapshot
	}{FormSectionID, s})
}

// RenderConfirm writes the delete confirmation prompt for student id.
func RenderConfirm(w io.Writer, id int64) error {
	return confirmTmpl.Execute(w, struct {
		ID     int64
		Prompt string
	}{id, DeletePrompt})
}
