package usecase

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/shesho2101/ProyectoIntegrador2/internal/domain/entity"
	"github.com/shesho2101/ProyectoIntegrador2/internal/domain/repository"
	"github.com/shesho2101/ProyectoIntegrador2/pkg/listing"
	"github.com/shesho2101/ProyectoIntegrador2/pkg/logger"
	"github.com/shesho2101/ProyectoIntegrador2/pkg/utils"
)

const receiptSheet = "Recibos"

var receiptHeader = []interface{}{"Recibo", "Tipo", "Producto", "Inicio", "Fin", "Total", "Estado", "Fecha"}

// ReservationUsecase shows confirmed bookings as receipts
type ReservationUsecase struct {
	reservations repository.ReservationRepository
	sessions     SessionProvider
	pageSize     int
	logger       logger.Logger
}

// NewReservationUsecase creates a new reservation usecase
func NewReservationUsecase(reservations repository.ReservationRepository, sessions SessionProvider, pageSize int, logger logger.Logger) *ReservationUsecase {
	return &ReservationUsecase{
		reservations: reservations,
		sessions:     sessions,
		pageSize:     pageSize,
		logger:       logger,
	}
}

// Receipts returns one page of the user's reservations
func (r *ReservationUsecase) Receipts(ctx context.Context, clientID string, page int) (Listing[entity.Reservation], error) {
	items, err := r.list(ctx, clientID)
	if err != nil {
		return Listing[entity.Reservation]{}, err
	}
	return newListing(items, listing.Criteria{}, page, "", r.pageSize), nil
}

// Export writes every reservation of the user to w as an XLSX workbook
func (r *ReservationUsecase) Export(ctx context.Context, clientID string, w io.Writer) error {
	items, err := r.list(ctx, clientID)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", receiptSheet); err != nil {
		return fmt.Errorf("failed to name receipt sheet: %w", err)
	}
	if err := f.SetSheetRow(receiptSheet, "A1", &receiptHeader); err != nil {
		return fmt.Errorf("failed to write receipt header: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	if err := f.SetCellStyle(receiptSheet, "A1", "H1", bold); err != nil {
		return fmt.Errorf("failed to style receipt header: %w", err)
	}
	if err := f.SetColWidth(receiptSheet, "A", "H", 18); err != nil {
		return fmt.Errorf("failed to size receipt columns: %w", err)
	}

	for i, res := range items {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{
			res.ID,
			string(res.ProductType),
			res.ProductID,
			formatOptionalDate(res.CheckIn),
			formatOptionalDate(res.CheckOut),
			res.Total,
			res.Status,
			formatOptionalDate(&res.CreatedAt),
		}
		if err := f.SetSheetRow(receiptSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write receipt %s: %w", res.ID, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	r.logger.Info("Receipts exported", "clientId", clientID, "rows", len(items))
	return nil
}

func (r *ReservationUsecase) list(ctx context.Context, clientID string) ([]entity.Reservation, error) {
	state, err := r.sessions.RequireSession(ctx, clientID)
	if err != nil {
		return nil, err
	}
	return r.reservations.ListReservations(ctx, state.Token, state.UserID)
}

func formatOptionalDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format(utils.DATE_LAYOUT)
}
