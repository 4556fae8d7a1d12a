package intake

import "strings"

const notSpecified = "Not specified"

// ComposeMessage summarises the property and service details of form into
// the free-text message stored with the request.  Blank values fall back to
// "0" for counts and "Not specified" for everything else.
func ComposeMessage(form Form) string {
	var b strings.Builder

	b.WriteString("Property Details:\n")
	b.WriteString("- Bedrooms: " + orDefault(form.Get(FieldBedrooms), "0") + "\n")
	b.WriteString("- Bathrooms: " + orDefault(form.Get(FieldBathrooms), "0") + "\n")
	b.WriteString("- Square Footage: " + orDefault(form.Get(FieldSquareFootage), "0") + " sq ft\n")

	b.WriteString("\nService Details:\n")
	b.WriteString("- Service Type: " + ServiceLabel(form.Get(FieldServiceType)) + "\n")
	b.WriteString("- Desired Cleaning Date: " + orDefault(form.Get(FieldCleanDate), notSpecified) + "\n")
	b.WriteString("- Date Flexible: " + orDefault(form.Get(FieldIsFlexible), notSpecified) + "\n")

	if req := form.Get(FieldRequirements); req != "" {
		b.WriteString("\nSpecial Requirements:\n")
		b.WriteString(req + "\n")
	}

	b.WriteString("\nHow they found us: " + orDefault(form.Get(FieldSource), notSpecified))
	return b.String()
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
