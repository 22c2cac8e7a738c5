package export

import (
	"fmt"

	"github.com/suncar/seeder/models"
	"github.com/xuri/excelize/v2"
)

const WorkOrdersSheet = "Ordenes de trabajo"

var workOrderHeaders = []interface{}{
	"ID", "Brigada ID", "Brigada", "Cliente", "Cliente nombre",
	"Tipo de reporte", "Fecha ejecución", "Comentarios", "Fecha creación", "Estado",
}

func workOrderRow(o models.WorkOrder) []interface{} {
	id := ""
	if !o.Id.IsZero() {
		id = o.Id.Hex()
	}
	return []interface{}{
		id, o.BrigadeId, o.BrigadeName, o.ClientNumber, o.ClientName,
		o.ReportType, o.ExecutionDate, o.CommentText(), o.CreationDate, o.Status,
	}
}

// WriteWorkOrders writes one header row and one row per order to an .xlsx
// file at path.
func WriteWorkOrders(path string, orders []models.WorkOrder) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", WorkOrdersSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := f.SetSheetRow(WorkOrdersSheet, "A1", &workOrderHeaders); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	if err := f.SetCellStyle(WorkOrdersSheet, "A1", "J1", style); err != nil {
		return fmt.Errorf("header style: %w", err)
	}

	for i, o := range orders {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := workOrderRow(o)
		if err := f.SetSheetRow(WorkOrdersSheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}
	_ = f.SetColWidth(WorkOrdersSheet, "A", "A", 26)
	_ = f.SetColWidth(WorkOrdersSheet, "C", "C", 30)
	_ = f.SetColWidth(WorkOrdersSheet, "E", "E", 20)
	_ = f.SetColWidth(WorkOrdersSheet, "G", "G", 28)
	_ = f.SetColWidth(WorkOrdersSheet, "H", "H", 50)
	_ = f.SetColWidth(WorkOrdersSheet, "I", "I", 28)

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}
