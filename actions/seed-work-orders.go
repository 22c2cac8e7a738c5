package actions

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gosuri/uiprogress"
	"github.com/suncar/seeder/database"
	"github.com/suncar/seeder/export"
	"github.com/suncar/seeder/models"
	"github.com/suncar/seeder/queue"
	"github.com/suncar/seeder/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	DefaultMongoURI            = "mongodb://localhost:27017"
	DefaultDBName              = "suncar"
	DefaultWorkOrderCollection = "ordenes_trabajo"
	DefaultWorkOrderCount      = 20
	DefaultSampleSize          = 3
)

var errInterrupted = errors.New("interrupted")

var (
	okColor   = color.New(color.FgGreen)
	warnColor = color.New(color.FgYellow)
	infoColor = color.New(color.FgCyan)
)

type SeedWorkOrdersConfig struct {
	// MongoURI wins over MongoHost when both are set.
	MongoURI            string `validate:"omitempty,startswith=mongodb"`
	MongoHost           string
	MongoPort           string `validate:"omitempty,numeric"`
	DatabaseCredentials string
	MongoUsername       string
	MongoPassword       string

	DBName     string `validate:"required,excludesall=/\\.$"`
	Collection string `validate:"required,excludes=$"`
	Count      int    `validate:"min=1,max=100000"`
	SampleSize int    `validate:"min=0,max=100"`
	// Seed 0 seeds from the clock.
	Seed       int64
	NoProgress bool
	ExportPath string `validate:"omitempty,endswith=.xlsx"`

	QueueSystem string `validate:"omitempty,oneof=rabbitmq kafka sqs webhook"`
	QueueTopic  string
	Queue       models.Queue
}

func (c *SeedWorkOrdersConfig) ApplyDefaults() {
	if c.MongoURI == "" && c.MongoHost == "" {
		c.MongoURI = DefaultMongoURI
	}
	if c.DBName == "" {
		c.DBName = DefaultDBName
	}
	if c.Collection == "" {
		c.Collection = DefaultWorkOrderCollection
	}
	if c.Count == 0 {
		c.Count = DefaultWorkOrderCount
	}
	if c.SampleSize < 0 {
		c.SampleSize = DefaultSampleSize
	}
	c.QueueSystem = strings.ToLower(strings.TrimSpace(c.QueueSystem))
}

func (c SeedWorkOrdersConfig) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}
	if c.MongoURI == "" && c.MongoHost == "" {
		return database.ErrNoMongoTarget
	}
	switch c.QueueSystem {
	case queue.SystemKafka, queue.SystemSQS, queue.SystemRabbitMQ:
		if c.QueueTopic == "" {
			return fmt.Errorf("queue %s needs a topic (-queue-topic)", c.QueueSystem)
		}
	}
	return nil
}

// WorkOrderStore is the storage the seeder needs. database.WorkOrderCollection
// implements it against MongoDB.
type WorkOrderStore interface {
	IndexStore
	Reset(ctx context.Context) (bool, error)
	InsertMany(ctx context.Context, orders []models.WorkOrder) ([]primitive.ObjectID, error)
	CountDocuments(ctx context.Context, field string, value string) (int64, error)
	Sample(ctx context.Context, limit int64) ([]models.WorkOrder, error)
}

// WorkOrderSeeder runs the reset, index, generate, insert and report steps
// against a store.
type WorkOrderSeeder struct {
	Store      WorkOrderStore
	Out        io.Writer
	Rand       *rand.Rand
	Now        func() time.Time
	Database   string
	Count      int
	SampleSize int
	// Progress, when set, is started before generation; it returns the
	// per-order tick and the stop function.
	Progress func(total int) (incr func(), stop func())
}

func (s *WorkOrderSeeder) Run(ctx context.Context) (models.SeedSummary, []models.WorkOrder, error) {
	out := s.Out
	if out == nil {
		out = io.Discard
	}
	now := s.Now
	if now == nil {
		now = time.Now
	}
	r := s.Rand
	if r == nil {
		r = utils.NewRand(0)
	}

	summary := models.SeedSummary{
		RunId:      uuid.New().String(),
		Database:   s.Database,
		Collection: s.Store.Name(),
	}
	if interrupted() {
		return summary, nil, errInterrupted
	}

	// Reset
	dropped, err := s.Store.Reset(ctx)
	if dropped {
		warnColor.Fprintf(out, "⚠️  Collection '%s' already existed. Dropped it.\n", s.Store.Name())
	}
	if err != nil {
		return summary, nil, fmt.Errorf("reset collection: %w", err)
	}
	summary.Dropped = dropped
	fmt.Fprintf(out, "📦 Created collection '%s'\n", s.Store.Name())

	// Indexes
	fmt.Fprintln(out, "🔍 Creating indexes...")
	specs := database.WorkOrderIndexSpecs()
	if err := s.Store.EnsureIndexes(ctx, specs); err != nil {
		return summary, nil, fmt.Errorf("create indexes: %w", err)
	}
	existing, err := s.Store.ListIndexKeys(ctx)
	if err != nil {
		return summary, nil, fmt.Errorf("list indexes: %w", err)
	}
	if missing := database.MissingIndexes(specs, existing); len(missing) > 0 {
		names := make([]string, 0, len(missing))
		for _, m := range missing {
			names = append(names, m.Name)
		}
		return summary, nil, fmt.Errorf("indexes missing after creation: %s", strings.Join(names, ", "))
	}
	okColor.Fprintf(out, "✅ Created %d indexes\n", len(specs))

	if interrupted() {
		return summary, nil, errInterrupted
	}

	// Generate
	fmt.Fprintln(out, "📝 Inserting test data...")
	var incr, stop func()
	if s.Progress != nil {
		incr, stop = s.Progress(s.Count)
	}
	orders := database.BuildWorkOrderDocs(s.Count, r, now, incr)
	if stop != nil {
		stop()
	}
	if interrupted() {
		return summary, nil, errInterrupted
	}

	// Insert
	ids, err := s.Store.InsertMany(ctx, orders)
	if err != nil {
		return summary, nil, fmt.Errorf("insert work orders: %w", err)
	}
	summary.Inserted = len(ids)
	summary.InsertedIds = make([]string, 0, len(ids))
	for _, id := range ids {
		summary.InsertedIds = append(summary.InsertedIds, id.Hex())
	}
	okColor.Fprintf(out, "✅ Inserted %d test work orders\n", summary.Inserted)

	// Report
	if err := s.collectStats(ctx, &summary); err != nil {
		return summary, orders, err
	}
	summary.SeededAt = now()
	printSummary(out, summary)
	return summary, orders, nil
}

func (s *WorkOrderSeeder) collectStats(ctx context.Context, summary *models.SeedSummary) error {
	total, err := s.Store.CountDocuments(ctx, "", "")
	if err != nil {
		return fmt.Errorf("count work orders: %w", err)
	}
	summary.Total = total

	summary.ByReportType = make(map[string]int64, len(models.ReportTypes))
	for _, t := range models.ReportTypes {
		n, err := s.Store.CountDocuments(ctx, "tipo_reporte", t)
		if err != nil {
			return fmt.Errorf("count report type %s: %w", t, err)
		}
		summary.ByReportType[t] = n
	}

	summary.ByStatus = make(map[string]int64, len(models.Statuses))
	for _, st := range models.Statuses {
		n, err := s.Store.CountDocuments(ctx, "estado", st)
		if err != nil {
			return fmt.Errorf("count status %s: %w", st, err)
		}
		summary.ByStatus[st] = n
	}

	if s.SampleSize > 0 {
		samples, err := s.Store.Sample(ctx, int64(s.SampleSize))
		if err != nil {
			return fmt.Errorf("find sample work orders: %w", err)
		}
		summary.Samples = samples
	}
	return nil
}

func sumCounts(counts map[string]int64) int64 {
	var sum int64
	for _, n := range counts {
		sum += n
	}
	return sum
}

func printSummary(out io.Writer, summary models.SeedSummary) {
	fmt.Fprintln(out, "\n📊 Collection statistics:")
	fmt.Fprintf(out, "Total documents: %d\n", summary.Total)

	for _, t := range models.ReportTypes {
		fmt.Fprintf(out, "  - %s: %d\n", utils.Label(t), summary.ByReportType[t])
	}
	if sum := sumCounts(summary.ByReportType); sum != summary.Total {
		warnColor.Fprintf(out, "[warn] report type counts add up to %d, expected %d\n", sum, summary.Total)
	}

	for _, st := range models.Statuses {
		fmt.Fprintf(out, "  - %s: %d\n", utils.Label(st), summary.ByStatus[st])
	}
	if sum := sumCounts(summary.ByStatus); sum != summary.Total {
		warnColor.Fprintf(out, "[warn] status counts add up to %d, expected %d\n", sum, summary.Total)
	}

	if len(summary.Samples) > 0 {
		fmt.Fprintln(out, "\n📋 Sample work orders:")
		for _, o := range summary.Samples {
			executionDay := o.ExecutionDate
			if len(executionDay) > 10 {
				executionDay = executionDay[:10]
			}
			fmt.Fprintf(out, "\n  ID: %s\n", o.Id.Hex())
			fmt.Fprintf(out, "  Brigade: %s\n", o.BrigadeName)
			fmt.Fprintf(out, "  Client: %s\n", o.ClientName)
			fmt.Fprintf(out, "  Type: %s\n", o.ReportType)
			fmt.Fprintf(out, "  Status: %s\n", o.Status)
			fmt.Fprintf(out, "  Execution date: %s\n", executionDay)
		}
	}

	okColor.Fprintln(out, "\n✅ Initialization complete!")
	infoColor.Fprintln(out, "\n💡 Next steps:")
	fmt.Fprintln(out, "   1. Start the work orders API")
	fmt.Fprintln(out, "   2. Check that the endpoints respond")
	fmt.Fprintln(out, "   3. Point the frontend at the real API")
	fmt.Fprintln(out, "   4. Test the full integration")
}

func startProgress(total int) (func(), func()) {
	p := uiprogress.New()
	bar := p.AddBar(total).AppendCompleted().PrependElapsed()
	bar.PrependFunc(func(b *uiprogress.Bar) string {
		return fmt.Sprintf("Work orders %d/%d", b.Current(), total)
	})
	p.Start()
	return func() { bar.Incr() }, p.Stop
}

func RunSeedWorkOrders(cfg SeedWorkOrdersConfig) error {
	HandleSignals()
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	ctx := context.Background()
	db, err := database.NewMongoDB(ctx, cfg.MongoURI, cfg.MongoHost, cfg.MongoPort,
		cfg.DatabaseCredentials, cfg.MongoUsername, cfg.MongoPassword)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(context.Background()); err != nil {
			fmt.Fprintf(os.Stderr, "[warn] disconnect MongoDB: %v\n", err)
		}
	}()
	okColor.Printf("🔌 Connected to MongoDB: %s\n", cfg.DBName)

	seeder := &WorkOrderSeeder{
		Store:      database.NewWorkOrderCollection(db.Client, cfg.DBName, cfg.Collection),
		Out:        os.Stdout,
		Rand:       utils.NewRand(cfg.Seed),
		Now:        time.Now,
		Database:   cfg.DBName,
		Count:      cfg.Count,
		SampleSize: cfg.SampleSize,
	}
	if !cfg.NoProgress {
		seeder.Progress = startProgress
	}

	summary, orders, err := seeder.Run(ctx)
	if err != nil {
		return err
	}

	if cfg.ExportPath != "" {
		if err := export.WriteWorkOrders(cfg.ExportPath, orders); err != nil {
			return fmt.Errorf("export work orders: %w", err)
		}
		fmt.Printf("[info] exported %d work orders to %s\n", len(orders), cfg.ExportPath)
	}

	if cfg.QueueSystem != "" {
		notifySummary(cfg, summary)
	}

	fmt.Printf("[done] run_id=%s inserted=%d total=%d dropped=%v\n",
		summary.RunId, summary.Inserted, summary.Total, summary.Dropped)
	return nil
}

// notifySummary publishes the summary. The seed already succeeded, so
// failures are only warnings.
func notifySummary(cfg SeedWorkOrdersConfig, summary models.SeedSummary) {
	q, err := queue.CreateQueue(cfg.QueueSystem, cfg.Queue)
	if err != nil {
		fmt.Printf("[warn] create %s queue: %v\n", cfg.QueueSystem, err)
		return
	}
	defer q.Close()
	deliverSummary(os.Stdout, q, cfg.QueueSystem, cfg.QueueTopic, summary)
}

// deliverSummary checks the destination first so a missing topic or queue
// is reported as such rather than as a failed send.
func deliverSummary(out io.Writer, q queue.Queue, system string, topic string, summary models.SeedSummary) bool {
	if err := q.Test(topic); err != nil {
		fmt.Fprintf(out, "[warn] %s destination %q is not usable: %v\n", system, topic, err)
		return false
	}
	if err := queue.PublishSummary(q, topic, summary); err != nil {
		fmt.Fprintf(out, "[warn] publish summary to %s: %v\n", system, err)
		return false
	}
	fmt.Fprintf(out, "[info] published seed summary to %s (%s)\n", system, topic)
	return true
}

func SeedWorkOrders(cfg SeedWorkOrdersConfig) {
	reportConnection(cfg.MongoURI, cfg.MongoHost, cfg.MongoPort)
	reportSource("db", cfg.DBName)
	reportSource("work-order-collection", cfg.Collection)
	reportSource("count", cfg.Count)
	if cfg.Seed != 0 {
		fmt.Printf("[info] using flag -seed=%d\n", cfg.Seed)
	}

	if err := RunSeedWorkOrders(cfg); err != nil {
		fmt.Printf("[error] seed work orders: %v\n", err)
		os.Exit(1)
	}
}
