package export

import (
	"os"
	"testing"

	"hotelier/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportBookings(t *testing.T) {
	logger := zerolog.New(os.Stdout)
	reporter := NewReporter(t.TempDir(), &logger)

	completed := models.NewBooking(1, 1, 101, "Jane Doe", "AB123456", "01.06.2025", "05.06.2025")
	completed.Status = models.StatusCompleted
	completed.TotalPrice = 2000
	active := models.NewBooking(2, 2, 5, "John Smith", "CD987654", "10.07.2025", "12.07.2025")
	active.TotalPrice = 1500

	path, err := reporter.ExportBookings([]models.Booking{completed, active}, 2000)
	require.NoError(t, err)
	require.FileExists(t, path)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{"Бронирования", "Сводка"}, f.GetSheetList())

	client, err := f.GetCellValue("Бронирования", "D2")
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", client)

	status, err := f.GetCellValue("Бронирования", "H3")
	require.NoError(t, err)
	assert.Equal(t, models.StatusActive, status)

	total, err := f.GetCellValue("Сводка", "B1")
	require.NoError(t, err)
	assert.Equal(t, "2", total)

	revenue, err := f.GetCellValue("Сводка", "B5")
	require.NoError(t, err)
	assert.Equal(t, "2000", revenue)
}

func TestExportBookingsEmptyLedger(t *testing.T) {
	logger := zerolog.New(os.Stdout)
	reporter := NewReporter(t.TempDir(), &logger)

	path, err := reporter.ExportBookings(nil, 0)
	require.NoError(t, err)
	assert.FileExists(t, path)
}
