// Package pdf genera el comprobante de préstamo en PDF usando Maroto v2.
//
// Layout de la página A5:
//
//	┌──────────────────────────────────────────────┐
//	│  HEADER: Título + N° movimiento + Fecha      │
//	│  ──────────────────────────────────────────  │
//	│  EQUIPO: nombre + cantidad                   │
//	│  CLIENTE: nombre + contacto                  │
//	│  REGISTRADO POR: usuario                     │
//	│  ──────────────────────────────────────────  │
//	│  Estado (ABIERTO / DEVUELTO) + nota          │
//	└──────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/Prestamos-api/internal/application/ledger"
	"github.com/jhoicas/Prestamos-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ ledger.ReceiptGenerator = (*MarotoReceiptGenerator)(nil)

// MarotoReceiptGenerator implementa ledger.ReceiptGenerator usando Maroto v2.
type MarotoReceiptGenerator struct{}

// NewMarotoReceiptGenerator construye el generador.
func NewMarotoReceiptGenerator() *MarotoReceiptGenerator { return &MarotoReceiptGenerator{} }

// GenerateReceipt genera el comprobante del movimiento y devuelve sus bytes.
func (g *MarotoReceiptGenerator) GenerateReceipt(
	_ context.Context,
	mov *entity.Movement,
	equipment *entity.Equipment,
	user *entity.User,
	client *entity.Client,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A5).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Comprobante de Préstamo", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(mov))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(equipmentRow(equipment, mov))
	m.AddRows(clientRow(client))
	m.AddRows(userRow(user))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(statusRow(mov))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar comprobante: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título (izq) y número de movimiento + fecha de salida (der).
func headerRow(mov *entity.Movement) core.Row {
	fecha := mov.CheckoutAt.Format("02/01/2006 15:04")

	return row.New(18).Add(
		col.New(7).Add(
			text.New("COMPROBANTE DE PRÉSTAMO", props.Text{
				Style: fontstyle.Bold, Size: 12, Color: colorPrimary, Top: 1,
			}),
			text.New("Equipos en préstamo", props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Movimiento N°", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(shortID(mov.ID), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 7,
			}),
			text.New("Salida: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
		),
	)
}

// equipmentRow: equipo prestado y cantidad.
func equipmentRow(equipment *entity.Equipment, mov *entity.Movement) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("EQUIPO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(equipment.Name, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Cantidad prestada: %d unidad(es)", mov.Quantity), props.Text{
				Size: 8, Top: 12, Color: colorGray,
			}),
		),
	)
}

// clientRow: destinatario del préstamo.
func clientRow(client *entity.Client) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%s   |   Contacto: %s",
				client.Name, nonEmpty(client.Contact, "—"),
			), props.Text{Size: 9, Top: 7}),
		),
	)
}

// userRow: quién registró la salida.
func userRow(user *entity.User) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("REGISTRADO POR", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%s   |   %s",
				user.Name, nonEmpty(user.RoleTitle, user.AccessLevel),
			), props.Text{Size: 9, Top: 7}),
		),
	)
}

// statusRow: estado del movimiento y nota opcional.
func statusRow(mov *entity.Movement) core.Row {
	estado := "ABIERTO"
	if mov.ReturnedAt != nil {
		estado = "DEVUELTO el " + mov.ReturnedAt.Format("02/01/2006 15:04")
	}

	cols := []core.Component{
		text.New("Estado: "+estado, props.Text{
			Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 2,
		}),
	}
	if mov.Note != "" {
		cols = append(cols, text.New("Nota: "+mov.Note, props.Text{
			Size: 8, Top: 8, Color: colorGray,
		}))
	}

	return row.New(16).Add(col.New(12).Add(cols...))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// shortID devuelve el primer segmento del UUID, suficiente como referencia
// humana en el comprobante.
func shortID(id string) string {
	for i := 0; i < len(id); i++ {
		if id[i] == '-' {
			return id[:i]
		}
	}
	return id
}
