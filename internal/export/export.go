package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"hotelier/internal/metrics"
	"hotelier/internal/models"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

const (
	bookingsSheet = "Бронирования"
	summarySheet  = "Сводка"
)

// Reporter выгружает бронирования и сводку по выручке в XLSX.
type Reporter struct {
	exportPath string
	logger     *zerolog.Logger
}

func NewReporter(exportPath string, logger *zerolog.Logger) *Reporter {
	return &Reporter{exportPath: exportPath, logger: logger}
}

// ExportBookings создаёт файл с листом бронирований и листом сводки.
// Возвращает путь к созданному файлу.
func (r *Reporter) ExportBookings(bookings []models.Booking, revenue float64) (string, error) {
	if err := os.MkdirAll(r.exportPath, 0o755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(bookingsSheet)
	if err != nil {
		return "", fmt.Errorf("create bookings sheet: %w", err)
	}
	f.SetActiveSheet(index)

	if err := r.writeBookingsSheet(f, bookings); err != nil {
		return "", err
	}
	if err := r.writeSummarySheet(f, bookings, revenue); err != nil {
		return "", err
	}

	_ = f.DeleteSheet("Sheet1")

	fileName := fmt.Sprintf("bookings_%s.xlsx", time.Now().Format("2006-01-02_150405"))
	filePath := filepath.Join(r.exportPath, fileName)

	if err := f.SaveAs(filePath); err != nil {
		return "", fmt.Errorf("save export file: %w", err)
	}

	metrics.IncExport()
	r.logger.Info().Str("file_path", filePath).Int("bookings", len(bookings)).Msg("export file created")
	return filePath, nil
}

func (r *Reporter) writeBookingsSheet(f *excelize.File, bookings []models.Booking) error {
	headers := []string{"ID", "Отель", "Номер", "Клиент", "Паспорт", "Заезд", "Выезд", "Статус", "Стоимость"}
	for col, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		_ = f.SetCellValue(bookingsSheet, cell, header)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err == nil {
		lastCell, _ := excelize.CoordinatesToCellName(len(headers), 1)
		_ = f.SetCellStyle(bookingsSheet, "A1", lastCell, headerStyle)
	}

	for i, b := range bookings {
		row := i + 2
		values := []interface{}{b.ID, b.HotelID, b.RoomNumber, b.ClientName, b.Passport, b.CheckIn, b.CheckOut, b.Status, b.TotalPrice}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			_ = f.SetCellValue(bookingsSheet, cell, value)
		}
	}

	_ = f.SetColWidth(bookingsSheet, "A", "I", 16)
	return nil
}

func (r *Reporter) writeSummarySheet(f *excelize.File, bookings []models.Booking, revenue float64) error {
	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("create summary sheet: %w", err)
	}

	counts := map[string]int{}
	for _, b := range bookings {
		counts[b.Status]++
	}

	rows := [][]interface{}{
		{"Всего бронирований", len(bookings)},
		{"Активных", counts[models.StatusActive]},
		{"Завершённых", counts[models.StatusCompleted]},
		{"Отменённых", counts[models.StatusCancelled]},
		{"Выручка (по завершённым)", revenue},
	}
	for i, pair := range rows {
		keyCell, _ := excelize.CoordinatesToCellName(1, i+1)
		valCell, _ := excelize.CoordinatesToCellName(2, i+1)
		_ = f.SetCellValue(summarySheet, keyCell, pair[0])
		_ = f.SetCellValue(summarySheet, valCell, pair[1])
	}

	_ = f.SetColWidth(summarySheet, "A", "A", 28)
	return nil
}
