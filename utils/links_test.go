package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"already clean", "573001234567", "573001234567"},
		{"keeps leading plus", "+57 300 123 4567", "+573001234567"},
		{"drops separators", "(300) 123-4567", "3001234567"},
		{"drops inner plus", "57+3001234567", "573001234567"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizePhone(tt.input))
		})
	}
}

func TestMailtoLink(t *testing.T) {
	link := MailtoLink("ventas@acme.co", "Nuevo Pedido: HS-2025-123", "Hola, tu cotización está lista")

	assert.Contains(t, link, "mailto:ventas@acme.co?")
	assert.Contains(t, link, "subject=Nuevo+Pedido%3A+HS-2025-123")
	assert.NotContains(t, link, " ", "spaces must be escaped")
}

func TestWhatsAppLink(t *testing.T) {
	link := WhatsAppLink("+57 300 123 4567", "Entrega realizada")

	assert.Contains(t, link, "https://wa.me/+573001234567?text=")
	assert.Contains(t, link, "Entrega+realizada")
}

func TestMapSearchLink(t *testing.T) {
	link := MapSearchLink("Calle 10 # 43-12, Medellín")

	assert.Contains(t, link, "https://www.google.com/maps/search/?api=1&query=")
	assert.NotContains(t, link, "#")
}

func TestDirectionsLink(t *testing.T) {
	link := DirectionsLink([]string{"6.2442,-75.5812", "", "Calle 10 # 43-12"})

	assert.Contains(t, link, "https://www.google.com/maps/dir/")
	assert.Contains(t, link, "6.2442%2C-75.5812")
	assert.NotContains(t, link, "//6", "empty stops must be skipped")
}

func TestDirectionsLink_Empty(t *testing.T) {
	assert.Equal(t, "", DirectionsLink(nil))
	assert.Equal(t, "", DirectionsLink([]string{"", ""}))
}

func TestBestLocation(t *testing.T) {
	tests := []struct {
		name          string
		georeferencia string
		coordenadas   string
		fallbacks     []string
		want          string
	}{
		{"georeference wins", "6.1,-75.5", "6.2,-75.6", []string{"Calle 10"}, "6.1,-75.5"},
		{"coordinates next", "", "6.2,-75.6", []string{"Calle 10"}, "6.2,-75.6"},
		{"first nonempty fallback", "", "", []string{"", "Calle 10", "ACME"}, "Calle 10"},
		{"nothing available", "", "", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BestLocation(tt.georeferencia, tt.coordenadas, tt.fallbacks...))
		})
	}
}
