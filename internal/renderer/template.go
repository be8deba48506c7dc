package renderer

// defaultThemeTemplate is a single-page A4 resume layout. Styles are inlined
// so the page renders identically in the browser preview and in the PDF
// printer.
const defaultThemeTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.FullName}} - Resume</title>
<style>
  @page { size: A4; margin: 18mm 16mm; }
  body { font-family: "Helvetica Neue", Helvetica, Arial, sans-serif; color: #1a1a1a; font-size: 10.5pt; line-height: 1.45; margin: 0; }
  header { border-bottom: 2px solid #2b2b2b; padding-bottom: 8px; margin-bottom: 14px; }
  h1 { font-size: 20pt; margin: 0; letter-spacing: 0.5px; }
  .job-title { font-size: 12pt; color: #444; margin-top: 2px; }
  .contact { font-size: 9pt; color: #555; margin-top: 6px; }
  .contact span + span::before { content: "  \2022  "; color: #999; }
  h2 { font-size: 11pt; text-transform: uppercase; letter-spacing: 1px; border-bottom: 1px solid #ccc; padding-bottom: 2px; margin: 14px 0 6px; }
  .entry { margin-bottom: 8px; }
  .entry-head { display: flex; justify-content: space-between; }
  .entry-title { font-weight: 600; }
  .entry-period { color: #666; font-size: 9.5pt; }
  .entry-body { margin-top: 2px; color: #333; }
  ul.inline { list-style: none; padding: 0; margin: 0; }
  ul.inline li { display: inline-block; background: #f0f0f0; border-radius: 3px; padding: 1px 7px; margin: 0 4px 4px 0; font-size: 9.5pt; }
  a { color: #1a5276; text-decoration: none; }
</style>
</head>
<body>
<header>
  <h1>{{.FullName}}</h1>
  {{if .JobTitle}}<div class="job-title">{{.JobTitle}}</div>{{end}}
  <div class="contact">
    {{if .Contact.Email}}<span>{{.Contact.Email}}</span>{{end}}
    {{if .Contact.Phone}}<span>{{.Contact.Phone}}</span>{{end}}
    {{if .Contact.Location}}<span>{{.Contact.Location}}</span>{{end}}
  </div>
</header>

{{if .Summary}}
<section>
  <h2>Summary</h2>
  <p>{{.Summary}}</p>
</section>
{{end}}

{{if .HasExperience}}
<section>
  <h2>Experience</h2>
  {{range .Experience}}
  <div class="entry">
    <div class="entry-head">
      <span class="entry-title">{{.Company}}</span>
      <span class="entry-period">{{.Duration}}</span>
    </div>
    <div class="entry-body">{{.Description}}</div>
  </div>
  {{end}}
</section>
{{end}}

{{if .HasProjects}}
<section>
  <h2>Projects</h2>
  {{range .Projects}}
  <div class="entry">
    <div class="entry-head">
      <span class="entry-title">{{.Name}}</span>
      {{if .Link}}<a href="{{.Link}}">{{.Link}}</a>{{end}}
    </div>
    <div class="entry-body">{{.Description}}</div>
  </div>
  {{end}}
</section>
{{end}}

{{if .HasEducation}}
<section>
  <h2>Education</h2>
  {{range .Education}}
  <div class="entry">
    <div class="entry-head">
      <span class="entry-title">{{.Institution}}</span>
      <span class="entry-period">{{.Duration}}</span>
    </div>
    <div class="entry-body">{{.Course}}</div>
  </div>
  {{end}}
</section>
{{end}}

{{if .HasSkills}}
<section>
  <h2>Skills</h2>
  <ul class="inline">{{range .Skills}}<li>{{.}}</li>{{end}}</ul>
</section>
{{end}}

{{if .HasCertifications}}
<section>
  <h2>Certifications</h2>
  <ul class="inline">{{range .Certifications}}<li>{{.}}</li>{{end}}</ul>
</section>
{{end}}
</body>
</html>
`
