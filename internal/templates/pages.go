// Package templates renders the HTML pages returned by the booking
// endpoint.  Every dynamic value goes through templ.EscapeString.
package templates

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/a-h/templ"
)

// Business contact lines shown on the confirmation page.
const (
	BrandName    = "Babcock Cleaning"
	ContactEmail = "contact@babcockcleaning.com"
	ContactPhone = "(+234) 90 342 4893"
)

// SuccessView is the data behind the confirmation page.
type SuccessView struct {
	RequestID uint64
	HomeURL   string
}

// ErrorView is the data behind the error page.
type ErrorView struct {
	Errors []string
}

var nextSteps = []string{
	"We'll review your property details and requirements",
	"Calculate a personalized quote for your service",
	"Contact you via phone or email to confirm details",
	"Schedule your cleaning appointment",
}

// SuccessPage confirms a stored booking request.
func SuccessPage(v SuccessView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		writeHead(&b, "Booking Request Submitted - "+BrandName, "success")
		b.WriteString(`<div class="card"><div class="icon">&#10003;</div>`)
		b.WriteString(`<h1>Request Submitted Successfully!</h1>`)
		b.WriteString(`<p>Thank you for choosing ` + templ.EscapeString(BrandName) + `. We've received your booking request.</p>`)
		b.WriteString(`<div class="request-id">Your Request ID: #` + templ.EscapeString(strconv.FormatUint(v.RequestID, 10)) + `</div>`)
		b.WriteString(`<p>Our team will review your request and contact you within 24 hours to confirm your booking and provide a detailed quote.</p>`)
		b.WriteString(`<div class="info-box"><h3>What Happens Next?</h3><ul>`)
		for _, step := range nextSteps {
			b.WriteString(`<li>` + templ.EscapeString(step) + `</li>`)
		}
		b.WriteString(`</ul></div>`)
		b.WriteString(`<a href="` + templ.EscapeString(homeURL(v.HomeURL)) + `" class="btn">Return to Homepage</a>`)
		b.WriteString(`<p class="contact">Questions? Contact us at <br><strong>` + templ.EscapeString(ContactEmail) +
			`</strong> or <strong>` + templ.EscapeString(ContactPhone) + `</strong></p>`)
		b.WriteString(`</div>`)
		writeFoot(&b)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

// ErrorPage lists what went wrong with a submission.
func ErrorPage(v ErrorView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		writeHead(&b, "Error - "+BrandName, "error")
		b.WriteString(`<div class="card"><div class="icon">&#10005;</div>`)
		b.WriteString(`<h1>Submission Error</h1>`)
		b.WriteString(`<p>We encountered some issues processing your request:</p>`)
		b.WriteString(`<ul class="error-list">`)
		for _, e := range v.Errors {
			b.WriteString(`<li>` + templ.EscapeString(e) + `</li>`)
		}
		b.WriteString(`</ul>`)
		b.WriteString(`<p>Please go back and correct these errors.</p>`)
		b.WriteString(`<button onclick="history.back()" class="btn">Go Back</button>`)
		b.WriteString(`</div>`)
		writeFoot(&b)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

func homeURL(u string) string {
	u = strings.TrimSpace(u)
	if u == "" {
		return "/index.html"
	}
	// Only plain http(s) or site-relative links are rendered into href.
	lower := strings.ToLower(u)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") || strings.HasPrefix(u, "/") {
		return u
	}
	return "/index.html"
}

func writeHead(b *strings.Builder, title, variant string) {
	b.WriteString(`<!DOCTYPE html><html lang="en"><head><meta charset="UTF-8">`)
	b.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1.0">`)
	b.WriteString(`<title>` + templ.EscapeString(title) + `</title>`)
	b.WriteString(`<style>` + pageCSS + `</style></head>`)
	b.WriteString(`<body class="` + templ.EscapeString(variant) + `">`)
}

func writeFoot(b *strings.Builder) {
	b.WriteString(`</body></html>`)
}

const pageCSS = `*{margin:0;padding:0;box-sizing:border-box}` +
	`body{font-family:'Poppins',sans-serif;min-height:100vh;display:flex;align-items:center;justify-content:center;padding:20px}` +
	`body.success{background:linear-gradient(135deg,#2AA1EB 0%,#1565c0 100%)}` +
	`body.error{background:linear-gradient(135deg,#f44336 0%,#c62828 100%)}` +
	`.card{background:#fff;padding:50px;border-radius:15px;box-shadow:0 10px 40px rgba(0,0,0,.2);max-width:600px;text-align:center}` +
	`.icon{width:80px;height:80px;border-radius:50%;display:flex;align-items:center;justify-content:center;margin:0 auto 30px;font-size:40px;color:#fff}` +
	`.success .icon{background:#4CAF50}.error .icon{background:#f44336}` +
	`h1{margin-bottom:20px}.success h1{color:#2AA1EB}.error h1{color:#f44336}` +
	`p{color:#666;line-height:1.8;margin-bottom:15px}` +
	`.request-id{background:#f5f5f5;padding:15px;border-radius:8px;margin:25px 0;font-weight:600;color:#2AA1EB;font-size:1.2rem}` +
	`.info-box{background:#E3F2FD;padding:20px;border-radius:10px;margin-top:30px;text-align:left}` +
	`.info-box ul{list-style:none}.info-box li{padding:8px 0;color:#555}` +
	`.error-list{background:#ffebee;padding:20px 20px 20px 40px;border-radius:10px;margin:20px 0;text-align:left;color:#c62828;line-height:1.8}` +
	`.btn{display:inline-block;background:#2AA1EB;color:#fff;padding:15px 40px;border-radius:50px;text-decoration:none;margin-top:25px;font-weight:600;border:none;font-size:1rem;cursor:pointer}` +
	`.contact{margin-top:30px;font-size:.9rem}`
