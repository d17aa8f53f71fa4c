// Package pdf renders the weekly plan and the shopping list into a
// printable document.
package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"weekly-meal-planner/internal/plan"
)

const (
	pageLeft   = 14.0
	pageRight  = 196.0
	gridTop    = 35.0
	dayColW    = 25.0
	lineHeight = 4.0

	// If the grid ends below this the shopping section moves to a new page.
	shoppingBreakY = 230.0
)

// brand is the accent color used for headers.
var brand = [3]int{16, 185, 129}

// Generate renders the plan grid and the precomputed shopping list and
// returns the document bytes.
func Generate(data plan.AppData, shoppingList []string) ([]byte, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	tr := doc.UnicodeTranslatorFromDescriptor("")
	doc.AddPage()

	drawTitle(doc, tr)
	gridBottom := drawGrid(doc, tr, data)
	drawShoppingSection(doc, tr, shoppingList, gridBottom)

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func drawTitle(doc *fpdf.Fpdf, tr func(string) string) {
	doc.SetFont("Helvetica", "B", 22)
	doc.SetTextColor(brand[0], brand[1], brand[2])
	doc.CellFormat(0, 10, tr("Planejador de Refeições"), "", 1, "C", false, 0, "")

	doc.SetFont("Helvetica", "", 10)
	doc.SetTextColor(120, 120, 120)
	week := fmt.Sprintf("Semana de: %s", time.Now().Format("02/01/2006"))
	doc.CellFormat(0, 8, tr(week), "", 1, "C", false, 0, "")
}

// drawGrid renders the 7-row calendar table and returns its bottom y.
func drawGrid(doc *fpdf.Fpdf, tr func(string) string, data plan.AppData) float64 {
	catColW := (pageRight - pageLeft - dayColW) / float64(len(data.Categories))
	y := gridTop

	// Header row
	doc.SetFont("Helvetica", "B", 9)
	doc.SetFillColor(brand[0], brand[1], brand[2])
	doc.SetTextColor(255, 255, 255)
	doc.SetDrawColor(220, 220, 220)
	doc.SetLineWidth(0.1)
	doc.SetXY(pageLeft, y)
	doc.CellFormat(dayColW, 12, "", "1", 0, "C", true, 0, "")
	for _, cat := range data.Categories {
		doc.CellFormat(catColW, 12, tr(cat.Name), "1", 0, "C", true, 0, "")
	}
	y += 12

	doc.SetFont("Helvetica", "", 9)
	for dayIndex, day := range plan.DaysOfWeek {
		cells := make([]string, 0, len(data.Categories))
		for _, cat := range data.Categories {
			content := "-"
			if entry, ok := data.Plan[plan.Key(dayIndex, cat.ID)]; ok && entry.HasContent() {
				content = entry.DishName
			}
			cells = append(cells, content)
		}
		y = drawGridRow(doc, tr, y, catColW, day, cells)
	}
	return y
}

// drawGridRow renders one day row, sized to its tallest wrapped cell, and
// returns the y below it.
func drawGridRow(doc *fpdf.Fpdf, tr func(string) string, y, catColW float64, day string, cells []string) float64 {
	wrapped := make([][]string, len(cells))
	rowLines := 1
	for i, cell := range cells {
		wrapped[i] = doc.SplitText(tr(cell), catColW-4)
		if len(wrapped[i]) > rowLines {
			rowLines = len(wrapped[i])
		}
	}
	rowH := float64(rowLines)*lineHeight + 4

	// Day label cell
	doc.SetFont("Helvetica", "B", 9)
	doc.SetFillColor(249, 250, 251)
	doc.SetTextColor(60, 60, 60)
	doc.Rect(pageLeft, y, dayColW, rowH, "FD")
	doc.SetXY(pageLeft, y+(rowH-lineHeight)/2)
	doc.CellFormat(dayColW, lineHeight, tr(day), "", 0, "C", false, 0, "")

	doc.SetFont("Helvetica", "", 9)
	doc.SetTextColor(30, 30, 30)
	x := pageLeft + dayColW
	for _, lines := range wrapped {
		doc.Rect(x, y, catColW, rowH, "D")
		textY := y + (rowH-float64(len(lines))*lineHeight)/2
		for _, line := range lines {
			doc.SetXY(x, textY)
			doc.CellFormat(catColW, lineHeight, line, "", 0, "C", false, 0, "")
			textY += lineHeight
		}
		x += catColW
	}
	return y + rowH
}

func drawShoppingSection(doc *fpdf.Fpdf, tr func(string) string, shoppingList []string, gridBottom float64) {
	y := gridBottom + 20
	if y > shoppingBreakY {
		doc.AddPage()
		y = 25
	}

	doc.SetFont("Helvetica", "B", 16)
	doc.SetTextColor(brand[0], brand[1], brand[2])
	doc.Text(pageLeft, y, tr("Lista de Compras"))

	doc.SetFont("Helvetica", "", 10)
	doc.SetTextColor(150, 150, 150)
	doc.Text(pageLeft, y+6, tr(fmt.Sprintf("%d itens consolidados", len(shoppingList))))

	doc.SetDrawColor(brand[0], brand[1], brand[2])
	doc.SetLineWidth(0.5)
	doc.Line(pageLeft, y+10, pageRight, y+10)

	if len(shoppingList) == 0 {
		doc.SetFont("Helvetica", "", 11)
		doc.SetTextColor(100, 100, 100)
		doc.Text(pageLeft, y+20, tr("Nenhum item na lista para esta semana."))
		return
	}

	drawChecklist(doc, tr, shoppingList, y+15)
}

// drawChecklist lays the items out in two columns with a checkbox glyph
// beside each populated cell.
func drawChecklist(doc *fpdf.Fpdf, tr func(string) string, items []string, y float64) {
	const (
		colW = (pageRight - pageLeft) / 2
		rowH = 9.0
		box  = 3.5
	)

	doc.SetFont("Helvetica", "", 11)
	for i := 0; i < len(items); i += 2 {
		if y+rowH > 282 {
			doc.AddPage()
			y = 25
		}

		if (i/2)%2 == 1 {
			doc.SetFillColor(248, 250, 249)
			doc.Rect(pageLeft, y, colW*2, rowH, "F")
		}

		row := [2]string{items[i], ""}
		if i+1 < len(items) {
			row[1] = items[i+1]
		}
		for col, item := range row {
			if item == "" {
				continue
			}
			x := pageLeft + float64(col)*colW
			doc.SetDrawColor(160, 160, 160)
			doc.SetLineWidth(0.2)
			doc.RoundedRect(x+3, y+(rowH-box)/2, box, box, 0.5, "1234", "D")
			doc.SetTextColor(50, 50, 50)
			doc.SetXY(x+10, y)
			doc.CellFormat(colW-10, rowH, tr(item), "", 0, "L", false, 0, "")
		}
		y += rowH
	}
}
