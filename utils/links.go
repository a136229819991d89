package utils

import (
	"fmt"
	"net/url"
	"strings"
)

// MailtoLink builds a compose-email deep link
func MailtoLink(to, subject, body string) string {
	return fmt.Sprintf("mailto:%s?subject=%s&body=%s",
		to, url.QueryEscape(subject), url.QueryEscape(body))
}

// WhatsAppLink builds a wa.me compose link. Phone numbers keep a leading
// + but drop every other non-digit character.
func WhatsAppLink(phone, message string) string {
	return fmt.Sprintf("https://wa.me/%s?text=%s",
		NormalizePhone(phone), url.QueryEscape(message))
}

// NormalizePhone strips whitespace and separators from a phone number
func NormalizePhone(phone string) string {
	var b strings.Builder
	for i, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		} else if r == '+' && i == 0 {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// MapSearchLink builds a single-location Google Maps search URL
func MapSearchLink(location string) string {
	return "https://www.google.com/maps/search/?api=1&query=" + url.QueryEscape(location)
}

// DirectionsLink builds a multi-stop Google Maps directions URL. Empty
// stops are skipped; stops are escaped individually and joined by "/".
func DirectionsLink(stops []string) string {
	parts := make([]string, 0, len(stops))
	for _, s := range stops {
		if s == "" {
			continue
		}
		parts = append(parts, url.QueryEscape(s))
	}
	if len(parts) == 0 {
		return ""
	}
	return "https://www.google.com/maps/dir/" + strings.Join(parts, "/")
}

// BestLocation resolves the best available location for a routing stop:
// a captured georeference wins, then a stored coordinate, then the
// free-text fallbacks in order.
func BestLocation(georeferencia, coordenadas string, fallbacks ...string) string {
	if georeferencia != "" {
		return georeferencia
	}
	if coordenadas != "" {
		return coordenadas
	}
	for _, f := range fallbacks {
		if f != "" {
			return f
		}
	}
	return ""
}
