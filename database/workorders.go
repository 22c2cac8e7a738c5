package database

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/suncar/seeder/models"
	"github.com/suncar/seeder/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Lookup pools (static). Names and ids are always taken from the same entry.
var (
	Brigades = []models.BrigadeRef{
		{Id: "brigada001", Name: "Brigada Solar Norte"},
		{Id: "brigada002", Name: "Brigada Mantenimiento Centro"},
		{Id: "brigada003", Name: "Brigada Instalación Sur"},
	}

	Clients = []models.ClientRef{
		{Number: "CLI001", Name: "Empresa ABC S.A."},
		{Number: "CLI002", Name: "Juan Pérez"},
		{Number: "CLI003", Name: "Comercial XYZ"},
		{Number: "CLI004", Name: "María González"},
		{Number: "CLI005", Name: "Industrias DEF"},
	}

	// A nil entry is an order without comments.
	Comments = []*string{
		comment("Instalación de panel solar residencial en techo"),
		comment("Reparación urgente de inversor dañado"),
		comment("Mantenimiento preventivo anual de instalación"),
		comment("Ampliación de sistema solar existente"),
		comment("Revisión de conexiones y cables"),
		comment("Instalación de baterías de respaldo"),
		comment("Limpieza profunda de paneles solares"),
		nil,
		comment("Verificación de rendimiento del sistema"),
		comment("Reemplazo de módulo fotovoltaico defectuoso"),
	}
)

// Day offsets, inclusive.
const (
	MinCreationDaysAgo   = 0
	MaxCreationDaysAgo   = 30
	MinExecutionDayShift = -10
	MaxExecutionDayShift = 30
)

func comment(s string) *string {
	return &s
}

// BuildWorkOrderDocs generates n work orders. now is read once per order so
// timestamps are relative to the moment each one is built. onBuilt, when not
// nil, is called after every order.
func BuildWorkOrderDocs(n int, r *rand.Rand, now func() time.Time, onBuilt func()) []models.WorkOrder {
	if n < 0 {
		n = 0
	}
	orders := make([]models.WorkOrder, 0, n)
	for i := 0; i < n; i++ {
		brigade := utils.PickOne(r, Brigades)
		client := utils.PickOne(r, Clients)
		reportType := utils.PickOne(r, models.ReportTypes)
		status := utils.PickOne(r, models.Statuses)
		var comments *string
		if c := utils.PickOne(r, Comments); c != nil {
			text := *c
			comments = &text
		}

		daysSinceCreation := utils.IntBetween(r, MinCreationDaysAgo, MaxCreationDaysAgo)
		daysUntilExecution := utils.IntBetween(r, MinExecutionDayShift, MaxExecutionDayShift)

		t := now()
		order := models.NewWorkOrder(brigade, client)
		order.ReportType = reportType
		order.ExecutionDate = utils.FormatISO(t.AddDate(0, 0, daysUntilExecution))
		order.Comments = comments
		order.CreationDate = utils.FormatISO(t.AddDate(0, 0, -daysSinceCreation))
		order.Status = status
		orders = append(orders, order)
		if onBuilt != nil {
			onBuilt()
		}
	}
	return orders
}

// WorkOrderCollection wraps the work order collection of one database.
type WorkOrderCollection struct {
	db   *mongo.Database
	name string
}

func NewWorkOrderCollection(client *mongo.Client, dbName string, collName string) *WorkOrderCollection {
	return &WorkOrderCollection{db: client.Database(dbName), name: collName}
}

func (w *WorkOrderCollection) Name() string {
	return w.name
}

func (w *WorkOrderCollection) coll() *mongo.Collection {
	return w.db.Collection(w.name)
}

// Reset drops the collection when it exists and creates it again empty.
// It reports whether a drop happened.
func (w *WorkOrderCollection) Reset(ctx context.Context) (bool, error) {
	names, err := w.db.ListCollectionNames(ctx, bson.D{{Key: "name", Value: w.name}})
	if err != nil {
		return false, fmt.Errorf("list collections: %w", err)
	}
	dropped := false
	if len(names) > 0 {
		if err := w.coll().Drop(ctx); err != nil {
			return false, fmt.Errorf("drop collection %s: %w", w.name, err)
		}
		dropped = true
	}
	if err := w.db.CreateCollection(ctx, w.name); err != nil {
		return dropped, fmt.Errorf("create collection %s: %w", w.name, err)
	}
	return dropped, nil
}

func (w *WorkOrderCollection) EnsureIndexes(ctx context.Context, specs []IndexSpec) error {
	if len(specs) == 0 {
		return nil
	}
	indexModels := make([]mongo.IndexModel, 0, len(specs))
	for _, s := range specs {
		indexModels = append(indexModels, s.Model())
	}
	_, err := w.coll().Indexes().CreateMany(ctx, indexModels)
	return err
}

func (w *WorkOrderCollection) ListIndexKeys(ctx context.Context) (map[string]struct{}, error) {
	return ListIndexKeys(ctx, w.coll())
}

// InsertMany writes all orders in one ordered batch and stores the generated
// ids back on the slice.
func (w *WorkOrderCollection) InsertMany(ctx context.Context, orders []models.WorkOrder) ([]primitive.ObjectID, error) {
	if len(orders) == 0 {
		return nil, nil
	}
	docs := make([]interface{}, 0, len(orders))
	for _, o := range orders {
		docs = append(docs, o)
	}
	res, err := w.coll().InsertMany(ctx, docs)
	if err != nil {
		return nil, err
	}
	ids := make([]primitive.ObjectID, 0, len(res.InsertedIDs))
	for i, raw := range res.InsertedIDs {
		id, ok := raw.(primitive.ObjectID)
		if !ok {
			return ids, fmt.Errorf("unexpected inserted id type %T", raw)
		}
		if i < len(orders) {
			orders[i].Id = id
		}
		ids = append(ids, id)
	}
	return ids, nil
}
