package export

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suncar/seeder/models"
	"github.com/xuri/excelize/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestWriteWorkOrders(t *testing.T) {
	note := "Revisión de conexiones y cables"
	id := primitive.NewObjectID()
	orders := []models.WorkOrder{
		{
			Id:            id,
			BrigadeId:     "brigada001",
			BrigadeName:   "Brigada Solar Norte",
			ClientNumber:  "CLI002",
			ClientName:    "Juan Pérez",
			ReportType:    models.ReportTypeMaintenance,
			ExecutionDate: "2025-06-20T10:00:00.000000",
			Comments:      &note,
			CreationDate:  "2025-06-01T10:00:00.000000",
			Status:        models.StatusPending,
		},
		{
			BrigadeId:    "brigada003",
			BrigadeName:  "Brigada Instalación Sur",
			ClientNumber: "CLI005",
			ClientName:   "Industrias DEF",
			ReportType:   models.ReportTypeInstallation,
			Status:       models.StatusCancelled,
		},
	}

	path := filepath.Join(t.TempDir(), "ordenes.xlsx")
	require.NoError(t, WriteWorkOrders(path, orders))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(WorkOrdersSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "ID", rows[0][0])
	assert.Equal(t, "Estado", rows[0][9])

	assert.Equal(t, id.Hex(), rows[1][0])
	assert.Equal(t, "Juan Pérez", rows[1][4])
	assert.Equal(t, note, rows[1][7])
	assert.Equal(t, models.StatusPending, rows[1][9])

	// No id and no comment leave the cells empty.
	assert.Equal(t, "", rows[2][0])
	assert.Equal(t, "", rows[2][7])
	assert.Equal(t, models.StatusCancelled, rows[2][9])
}

func TestWriteWorkOrdersEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	require.NoError(t, WriteWorkOrders(path, nil))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(WorkOrdersSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestWriteWorkOrdersBadPath(t *testing.T) {
	err := WriteWorkOrders(filepath.Join(t.TempDir(), "missing", "dir", "x.xlsx"), nil)
	assert.Error(t, err)
}
