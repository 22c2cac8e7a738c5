package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Report types as stored in tipo_reporte.
const (
	ReportTypeInstallation = "inversión"
	ReportTypeBreakdown    = "avería"
	ReportTypeMaintenance  = "mantenimiento"
)

// Work order states as stored in estado.
const (
	StatusPending    = "pendiente"
	StatusInProgress = "en_proceso"
	StatusCompleted  = "completada"
	StatusCancelled  = "cancelada"
)

var ReportTypes = []string{
	ReportTypeInstallation,
	ReportTypeBreakdown,
	ReportTypeMaintenance,
}

var Statuses = []string{
	StatusPending,
	StatusInProgress,
	StatusCompleted,
	StatusCancelled,
}

type BrigadeRef struct {
	Id   string `json:"id" bson:"id"`
	Name string `json:"nombre" bson:"nombre"`
}

type ClientRef struct {
	Number string `json:"numero" bson:"numero"`
	Name   string `json:"nombre" bson:"nombre"`
}

// WorkOrder is the document shape consumed by the work orders API.
// Comments is nil when the order has no comment; it is stored as null.
type WorkOrder struct {
	Id            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	BrigadeId     string             `json:"brigada_id" bson:"brigada_id"`
	BrigadeName   string             `json:"brigada_nombre" bson:"brigada_nombre"`
	ClientNumber  string             `json:"cliente_numero" bson:"cliente_numero"`
	ClientName    string             `json:"cliente_nombre" bson:"cliente_nombre"`
	ReportType    string             `json:"tipo_reporte" bson:"tipo_reporte"`
	ExecutionDate string             `json:"fecha_ejecucion" bson:"fecha_ejecucion"`
	Comments      *string            `json:"comentarios" bson:"comentarios"`
	CreationDate  string             `json:"fecha_creacion" bson:"fecha_creacion"`
	Status        string             `json:"estado" bson:"estado"`
}

// NewWorkOrder starts an order for one brigade and one client, keeping each
// id next to its own name.
func NewWorkOrder(brigade BrigadeRef, client ClientRef) WorkOrder {
	return WorkOrder{
		BrigadeId:    brigade.Id,
		BrigadeName:  brigade.Name,
		ClientNumber: client.Number,
		ClientName:   client.Name,
	}
}

// CommentText returns the comment or an empty string.
func (w WorkOrder) CommentText() string {
	if w.Comments == nil {
		return ""
	}
	return *w.Comments
}
