package export

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

// GotenbergClient wraps the Gotenberg HTML-to-PDF service.
type GotenbergClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewGotenbergClient(baseURL string) *GotenbergClient {
	return &GotenbergClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// RenderHTML converts raw HTML into a PDF document. Gotenberg's chromium
// route expects the main document under the name index.html.
func (c *GotenbergClient) RenderHTML(ctx context.Context, html string) ([]byte, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("files", "index.html")
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, bytes.NewBufferString(html)); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fmt.Sprintf("%s/forms/chromium/convert/html", c.baseURL), body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("render failed with status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// SignatureLine is one rendered signature on the printed timesheet.
// Image holds a data URL as captured by the signature pad.
type SignatureLine struct {
	Name     string
	Image    template.URL
	SignedAt string
}

// TimesheetDocument is the printable form of one submission.
type TimesheetDocument struct {
	ClientName         string
	Month              int
	Year               int
	Shifts             []TimesheetShift
	EmployeeSignatures []SignatureLine
	RecipientSignature template.URL
	RecipientSignedAt  string
}

var timesheetTemplate = template.Must(template.New("timesheet").Parse(`<!DOCTYPE html>
<html lang="de">
<head>
<meta charset="utf-8">
<style>
  body { font-family: Helvetica, Arial, sans-serif; font-size: 11px; margin: 32px; }
  h1 { font-size: 16px; }
  table { width: 100%; border-collapse: collapse; margin-top: 12px; }
  th, td { border: 1px solid #999; padding: 4px 6px; text-align: left; }
  th { background: #eee; }
  .signatures { margin-top: 32px; display: flex; flex-wrap: wrap; gap: 24px; }
  .signature { width: 220px; }
  .signature img { width: 200px; height: 60px; object-fit: contain; border-bottom: 1px solid #333; }
  .signature .label { font-size: 10px; color: #333; margin-top: 4px; }
</style>
</head>
<body>
<h1>Stundennachweis {{.ClientName}} – {{printf "%02d" .Month}}/{{.Year}}</h1>
<table>
  <tr>
    <th>Datum</th><th>Mitarbeiter</th><th>Geplant</th><th>Gearbeitet</th><th>Status</th><th>Abwesenheit</th><th>Kommentar</th>
  </tr>
  {{range .Shifts}}
  <tr>
    <td>{{.Date.Format "02.01.2006"}}</td>
    <td>{{.EmployeeName}}</td>
    <td>{{.PlannedStart}}–{{.PlannedEnd}}</td>
    <td>{{if .ActualStart}}{{.ActualStart}}–{{.ActualEnd}}{{end}}</td>
    <td>{{.Status}}</td>
    <td>{{.Absence}}</td>
    <td>{{.Comment}}</td>
  </tr>
  {{end}}
</table>
<div class="signatures">
  {{range .EmployeeSignatures}}
  <div class="signature">
    <img src="{{.Image}}" alt="">
    <div class="label">{{.Name}}, unterschrieben am {{.SignedAt}}</div>
  </div>
  {{end}}
  {{if .RecipientSignature}}
  <div class="signature">
    <img src="{{.RecipientSignature}}" alt="">
    <div class="label">{{.ClientName}} (Leistungsempfänger), unterschrieben am {{.RecipientSignedAt}}</div>
  </div>
  {{end}}
</div>
</body>
</html>
`))

// TimesheetHTML renders the printable timesheet for Gotenberg.
func TimesheetHTML(doc TimesheetDocument) (string, error) {
	var buf bytes.Buffer
	if err := timesheetTemplate.Execute(&buf, doc); err != nil {
		return "", err
	}
	return buf.String(), nil
}
