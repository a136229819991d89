package services

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	appConfig "github.com/helpsoluciones/crm-api/config"
	"github.com/helpsoluciones/crm-api/models"
)

// Corporate blue used on document headers and table headings
var brandColor = [3]int{0, 74, 153}

// FormatMoney renders an amount with thousands separators, dropping the
// decimals when the value is whole
func FormatMoney(v float64) string {
	neg := v < 0
	v = math.Abs(v)
	whole := int64(v)
	frac := v - float64(whole)

	digits := fmt.Sprintf("%d", whole)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	out := b.String()
	if frac > 0.005 {
		out += strings.TrimPrefix(fmt.Sprintf("%.2f", frac), "0")
	}
	if neg {
		out = "-" + out
	}
	return out
}

// QuotePDFFilename embeds the organization's legal identifier and the
// quote's sequence number, matching the original filing convention
func QuotePDFFilename(cfg *appConfig.Config, consecutivo string) string {
	return fmt.Sprintf("COTIZACION %s NIT-%s_%s.pdf", cfg.OrgName, cfg.OrgNIT, consecutivo)
}

// PurchaseOrderPDFFilename names PO documents by sequence and supplier
func PurchaseOrderPDFFilename(consecutivo, proveedor string) string {
	return fmt.Sprintf("OC_%s_%s.pdf", consecutivo, strings.ReplaceAll(proveedor, " ", "_"))
}

// RepairTicketFilename names repair tickets by sequence number
func RepairTicketFilename(consecutivo string) string {
	return fmt.Sprintf("Ticket_%s.pdf", consecutivo)
}

// GenerateQuotePDF renders the A4 quote document: branded header, client
// info box, line-item table and totals footer. Product names and part
// numbers are resolved from the given catalog snapshot; unresolved
// references fall back to placeholder strings, never errors.
func GenerateQuotePDF(q *models.Quote, client *models.Client, products map[string]models.Product, condiciones string, cfg *appConfig.Config) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	// Branding header
	pdf.SetFillColor(brandColor[0], brandColor[1], brandColor[2])
	pdf.Rect(0, 0, 210, 40, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 20)
	pdf.Text(14, 22, tr(cfg.OrgName))
	pdf.SetFont("Helvetica", "", 10)
	pdf.Text(14, 30, tr(cfg.OrgTagline))
	right := fmt.Sprintf("Cotización N°: %s", q.Consecutivo)
	pdf.Text(200-pdf.GetStringWidth(tr(right)), 22, tr(right))

	// Client info box
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Text(14, 50, tr("INFORMACIÓN DEL CLIENTE"))
	pdf.Line(14, 52, 100, 52)
	pdf.SetFont("Helvetica", "", 10)
	if client != nil {
		pdf.Text(14, 60, tr("Nombre: "+client.Nombre))
		pdf.Text(14, 65, tr("NIT: "+client.NIT))
		pdf.Text(14, 70, tr("Contacto: "+client.Contacto))
		pdf.Text(14, 75, tr("Dirección: "+client.Direccion))
	}
	pdf.Text(150, 60, tr("Fecha: "+q.Fecha))
	pdf.Text(150, 65, tr("Validez: 15 días calendario"))

	// Line-item table
	headers := []string{"Descripción del Producto", "N° Parte", "Unidad", "Cant.", "Precio Unit.", "Subtotal"}
	widths := []float64{62, 26, 18, 14, 30, 32}
	pdf.SetY(85)
	pdf.SetX(14)
	pdf.SetFillColor(brandColor[0], brandColor[1], brandColor[2])
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 9)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 8, tr(h), "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "", 9)
	fill := false
	pdf.SetFillColor(240, 245, 255)
	for _, item := range q.Items {
		nombre := "N/A"
		numPart := "N/A"
		if prod, ok := products[item.ProductoID]; ok {
			nombre = prod.Nombre
			numPart = prod.NumPart
		}
		pdf.SetX(14)
		pdf.CellFormat(widths[0], 7, tr(nombre), "1", 0, "L", fill, 0, "")
		pdf.CellFormat(widths[1], 7, tr(numPart), "1", 0, "L", fill, 0, "")
		pdf.CellFormat(widths[2], 7, tr(item.Unidad), "1", 0, "L", fill, 0, "")
		pdf.CellFormat(widths[3], 7, FormatMoney(item.Cantidad), "1", 0, "R", fill, 0, "")
		pdf.CellFormat(widths[4], 7, "$"+FormatMoney(item.UnitSalePrice()), "1", 0, "R", fill, 0, "")
		pdf.CellFormat(widths[5], 7, "$"+FormatMoney(item.Total()), "1", 0, "R", fill, 0, "")
		pdf.Ln(-1)
		fill = !fill
	}

	// Totals footer
	finalY := pdf.GetY()
	totalsX := 135.0
	valuesX := 195.0
	pdf.SetFont("Helvetica", "B", 10)
	pdf.Text(totalsX, finalY+15, "SUBTOTAL:")
	pdf.SetFont("Helvetica", "", 10)
	sub := "$" + FormatMoney(q.Subtotal)
	pdf.Text(valuesX-pdf.GetStringWidth(sub), finalY+15, sub)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.Text(totalsX, finalY+22, "IVA TOTAL:")
	pdf.SetFont("Helvetica", "", 10)
	iva := "$" + FormatMoney(q.IVA)
	pdf.Text(valuesX-pdf.GetStringWidth(iva), finalY+22, iva)

	pdf.SetFillColor(brandColor[0], brandColor[1], brandColor[2])
	pdf.Rect(totalsX-5, finalY+28, 70, 12, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.Text(totalsX, finalY+36, "VALOR TOTAL:")
	total := "$" + FormatMoney(q.Total)
	pdf.Text(valuesX-pdf.GetStringWidth(total), finalY+36, total)

	// Commercial conditions
	if condiciones != "" {
		pdf.SetTextColor(0, 0, 0)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.Text(14, finalY+50, "CONDICIONES COMERCIALES:")
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetXY(14, finalY+54)
		pdf.MultiCell(180, 5, tr(condiciones), "", "L", false)
	}

	// Executive block
	execY := finalY + 90
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.Text(14, execY, "ATENTAMENTE,")
	pdf.Text(14, execY+10, tr(q.Ejecutivo))
	pdf.SetFont("Helvetica", "", 10)
	if q.EjecutivoTelefono != "" {
		pdf.Text(14, execY+15, tr("Tel: "+q.EjecutivoTelefono))
	}
	pdf.Text(14, execY+20, tr("Email: "+q.EjecutivoEmail))

	// Footer branding
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(150, 150, 150)
	footer := fmt.Sprintf("%s - NIT %s", cfg.OrgName, cfg.OrgNIT)
	pdf.Text(105-pdf.GetStringWidth(tr(footer))/2, 285, tr(footer))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render quote document: %w", err)
	}
	return buf.Bytes(), nil
}

// GeneratePurchaseOrderPDF renders the A4 purchase order sent to a
// supplier: header, supplier block, item table, totals and terms.
func GeneratePurchaseOrderPDF(oc *models.PurchaseOrder, supplier *models.Supplier, cfg *appConfig.Config) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFillColor(brandColor[0], brandColor[1], brandColor[2])
	pdf.Rect(0, 0, 210, 35, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 16)
	title := "ORDEN DE COMPRA"
	pdf.Text(105-pdf.GetStringWidth(title)/2, 18, title)
	pdf.SetFont("Helvetica", "", 10)
	sub := "Consecutivo: " + oc.Consecutivo
	pdf.Text(105-pdf.GetStringWidth(tr(sub))/2, 26, tr(sub))

	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.Text(14, 46, "PROVEEDOR")
	pdf.Line(14, 48, 90, 48)
	pdf.SetFont("Helvetica", "", 10)
	if supplier != nil {
		pdf.Text(14, 55, tr("Nombre: "+supplier.Nombre))
		pdf.Text(14, 60, tr("NIT: "+supplier.NIT))
		pdf.Text(14, 65, tr("Contacto: "+supplier.Contacto))
		pdf.Text(14, 70, tr("Dirección: "+supplier.Direccion))
	} else {
		pdf.Text(14, 55, tr("Nombre: "+oc.NombreProveedor))
	}
	pdf.Text(150, 55, tr("Fecha: "+oc.Fecha))

	headers := []string{"Producto", "N° Parte", "Cant.", "Precio Unit.", "Total"}
	widths := []float64{72, 30, 18, 30, 32}
	pdf.SetY(80)
	pdf.SetX(14)
	pdf.SetFillColor(brandColor[0], brandColor[1], brandColor[2])
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 9)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 8, tr(h), "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "", 9)
	fill := false
	pdf.SetFillColor(240, 245, 255)
	for _, item := range oc.Items {
		pdf.SetX(14)
		pdf.CellFormat(widths[0], 7, tr(item.NombreProducto), "1", 0, "L", fill, 0, "")
		pdf.CellFormat(widths[1], 7, tr(item.NumPart), "1", 0, "L", fill, 0, "")
		pdf.CellFormat(widths[2], 7, FormatMoney(item.Cantidad), "1", 0, "R", fill, 0, "")
		pdf.CellFormat(widths[3], 7, "$"+FormatMoney(item.PrecioUnitario), "1", 0, "R", fill, 0, "")
		pdf.CellFormat(widths[4], 7, "$"+FormatMoney(item.PrecioUnitario*item.Cantidad), "1", 0, "R", fill, 0, "")
		pdf.Ln(-1)
		fill = !fill
	}

	finalY := pdf.GetY()
	pdf.SetFont("Helvetica", "B", 10)
	pdf.Text(135, finalY+12, "SUBTOTAL:")
	pdf.Text(135, finalY+19, "IVA:")
	pdf.Text(135, finalY+26, "TOTAL:")
	pdf.SetFont("Helvetica", "", 10)
	for i, v := range []float64{oc.Subtotal, oc.IVA, oc.Total} {
		s := "$" + FormatMoney(v)
		pdf.Text(195-pdf.GetStringWidth(s), finalY+12+float64(i)*7, s)
	}

	if oc.CondicionesComerciales != "" {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.Text(14, finalY+40, "CONDICIONES COMERCIALES:")
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetXY(14, finalY+44)
		pdf.MultiCell(180, 5, tr(oc.CondicionesComerciales), "", "L", false)
	}
	if oc.Observaciones != "" {
		y := pdf.GetY() + 6
		pdf.SetFont("Helvetica", "B", 10)
		pdf.Text(14, y, "OBSERVACIONES:")
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetXY(14, y+4)
		pdf.MultiCell(180, 5, tr(oc.Observaciones), "", "L", false)
	}

	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(150, 150, 150)
	footer := fmt.Sprintf("%s - NIT %s", cfg.OrgName, cfg.OrgNIT)
	pdf.Text(105-pdf.GetStringWidth(tr(footer))/2, 285, tr(footer))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render purchase order document: %w", err)
	}
	return buf.Bytes(), nil
}

// GenerateRepairTicket renders the 80x150mm intake ticket for receipt
// printers, with a QR code encoding id, sequence and serial.
func GenerateRepairTicket(r *models.Repair, cfg *appConfig.Config) ([]byte, error) {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		UnitStr: "mm",
		Size:    fpdf.SizeType{Wd: 80, Ht: 150},
	})
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	name := strings.TrimSuffix(cfg.OrgName, " INFORMATICAS")
	pdf.Text(40-pdf.GetStringWidth(tr(name))/2, 10, tr(name))
	pdf.SetFont("Helvetica", "", 8)
	tag := "Soporte Técnico Especializado"
	pdf.Text(40-pdf.GetStringWidth(tr(tag))/2, 14, tr(tag))

	pdf.SetLineWidth(0.5)
	pdf.Line(5, 16, 75, 16)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.Text(5, 22, tr("ORDEN: "+r.Consecutivo))
	pdf.SetFont("Helvetica", "B", 8)
	pdf.Text(5, 26, tr("Fecha: "+r.FechaIngreso))

	pdf.Text(5, 32, "CLIENTE:")
	pdf.SetFont("Helvetica", "", 8)
	pdf.Text(5, 36, tr(r.ClienteNombre))

	pdf.SetFont("Helvetica", "B", 8)
	pdf.Text(5, 42, "EQUIPO:")
	pdf.SetFont("Helvetica", "", 8)
	pdf.Text(5, 46, tr(r.Tipo+" "+r.Marca))
	pdf.Text(5, 50, tr("S/N: "+r.Serial))

	pdf.SetFont("Helvetica", "B", 8)
	pdf.Text(5, 56, "OBSERVACIONES:")
	pdf.SetFont("Helvetica", "", 8)
	obs := r.Observaciones
	if obs == "" {
		obs = "Sin observaciones"
	}
	pdf.SetXY(5, 58)
	pdf.MultiCell(70, 4, tr(obs), "", "L", false)

	// QR code for tracking lookups at intake and handoff
	png, err := qrcode.Encode(r.QRPayload(), qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("failed to encode tracking QR: %w", err)
	}
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("repair-qr", opts, bytes.NewReader(png))
	pdf.ImageOptions("repair-qr", 25, 80, 30, 30, false, opts, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	scan := "Escanee para seguimiento"
	pdf.Text(40-pdf.GetStringWidth(tr(scan))/2, 112, tr(scan))
	pdf.SetFont("Helvetica", "", 8)
	thanks := "Gracias por su confianza"
	pdf.Text(40-pdf.GetStringWidth(tr(thanks))/2, 120, tr(thanks))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render repair ticket: %w", err)
	}
	return buf.Bytes(), nil
}
