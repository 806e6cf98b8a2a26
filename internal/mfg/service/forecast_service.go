package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/thorntonmirandajane/beast-inventory-system-sub001/internal/config"
	"github.com/thorntonmirandajane/beast-inventory-system-sub001/internal/mfg/entity"
	"github.com/thorntonmirandajane/beast-inventory-system-sub001/internal/mfg/planning"
	"github.com/thorntonmirandajane/beast-inventory-system-sub001/internal/mfg/repository"
	"go.uber.org/zap"
)

const (
	reportCacheKey          = "cache:forecast_report"
	defaultReportWindowDays = 7
)

// ForecastService owns the demand rows and the production-forecast run.
type ForecastService struct {
	repos  *repository.Repositories
	rdb    *redis.Client
	cfg    *config.Config
	logger *zap.Logger
}

func NewForecastService(repos *repository.Repositories, rdb *redis.Client, cfg *config.Config, logger *zap.Logger) *ForecastService {
	return &ForecastService{repos: repos, rdb: rdb, cfg: cfg, logger: logger}
}

type UpsertForecastRequest struct {
	SKUID             string  `json:"sku_id" binding:"required"`
	ForecastedQty     float64 `json:"forecasted_qty"`
	CurrentInGallatin float64 `json:"current_in_gallatin"`
}

func (s *ForecastService) List(ctx context.Context) ([]entity.Forecast, error) {
	return s.repos.Forecast.ListAll(ctx)
}

// Upsert writes the forecast line for a completed SKU.
func (s *ForecastService) Upsert(ctx context.Context, userID string, req *UpsertForecastRequest) (*entity.Forecast, error) {
	if req.ForecastedQty < 0 || req.CurrentInGallatin < 0 {
		return nil, fmt.Errorf("%w: quantities must not be negative", ErrInvalidInput)
	}

	sku, err := s.repos.SKU.FindByID(ctx, req.SKUID)
	if err != nil {
		return nil, err
	}
	if sku.Kind != entity.SKUKindCompleted {
		return nil, fmt.Errorf("%w: %s is not a completed product", ErrInvalidInput, sku.Code)
	}

	f := &entity.Forecast{
		ID:                uuid.New().String()[:32],
		SKUID:             req.SKUID,
		ForecastedQty:     req.ForecastedQty,
		CurrentInGallatin: req.CurrentInGallatin,
		UpdatedBy:         userID,
	}
	if err := s.repos.Forecast.Upsert(ctx, f); err != nil {
		return nil, fmt.Errorf("upsert forecast: %w", err)
	}
	s.invalidateReport(ctx)
	return f, nil
}

func (s *ForecastService) Delete(ctx context.Context, skuID string) error {
	if err := s.repos.Forecast.Delete(ctx, skuID); err != nil {
		return err
	}
	s.invalidateReport(ctx)
	return nil
}

// ========== report ==========

type ReportProcessLoad struct {
	Process string  `json:"process"`
	Units   float64 `json:"units"`
	Seconds float64 `json:"seconds"`
	Hours   float64 `json:"hours"`
}

type ReportComponent struct {
	SKUID     string  `json:"sku_id"`
	Code      string  `json:"code"`
	Name      string  `json:"name"`
	Kind      string  `json:"kind"`
	Needed    float64 `json:"needed"`
	Available float64 `json:"available"`
}

type ReportProduct struct {
	SKUID        string              `json:"sku_id"`
	Code         string              `json:"code"`
	Name         string              `json:"name"`
	Forecasted   float64             `json:"forecasted"`
	OnHand       float64             `json:"on_hand"`
	OffSite      float64             `json:"off_site"`
	NeedToBuild  float64             `json:"need_to_build"`
	RawMaterials []ReportComponent   `json:"raw_materials"`
	Assemblies   []ReportComponent   `json:"assemblies"`
	ProcessLoads []ReportProcessLoad `json:"process_loads"`
	BuildHours   float64             `json:"build_hours"`
}

type ReportShortage struct {
	SKUID     string   `json:"sku_id"`
	Code      string   `json:"code"`
	Name      string   `json:"name"`
	Needed    float64  `json:"needed"`
	Available float64  `json:"available"`
	Shortfall float64  `json:"shortfall"`
	Consumers []string `json:"consumers"`
}

type ReportLabor struct {
	Start          time.Time `json:"start"`
	End            time.Time `json:"end"`
	DaysInRange    int       `json:"days_in_range"`
	WorkerCount    int       `json:"worker_count"`
	AvailableHours float64   `json:"available_hours"`
	RequiredHours  float64   `json:"required_hours"`
	Sufficient     bool      `json:"sufficient"`
}

// ForecastReport is the full output of one planning run, cached between
// data changes.
type ForecastReport struct {
	GeneratedAt   time.Time           `json:"generated_at"`
	Products      []ReportProduct     `json:"products"`
	Shortages     []ReportShortage    `json:"shortages"`
	ProcessTotals []ReportProcessLoad `json:"process_totals"`
	Labor         *ReportLabor        `json:"labor"`
}

// Run recomputes the production forecast over [start, end) and caches the
// result.
func (s *ForecastService) Run(ctx context.Context, start, end time.Time) (*ForecastReport, error) {
	if start.IsZero() || end.IsZero() {
		start = time.Now()
		end = start.AddDate(0, 0, defaultReportWindowDays)
	}
	if !end.After(start) {
		return nil, fmt.Errorf("%w: end must be after start", ErrInvalidInput)
	}

	inputs, err := s.loadInputs(ctx)
	if err != nil {
		return nil, err
	}

	explosion, err := planning.ExplodeDepth(inputs.catalog, inputs.snapshot, inputs.lines, inputs.rates, s.cfg.Planning.ExplosionDepth)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	labor, err := planning.LaborCapacity(start, end, inputs.workers, explosion.RequiredHours())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	report := buildReport(explosion, labor)

	if payload, err := json.Marshal(report); err == nil {
		s.rdb.Set(ctx, reportCacheKey, payload, s.cfg.Planning.ReportCacheTTL)
	}

	s.logger.Info("forecast run complete",
		zap.Int("products", len(report.Products)),
		zap.Int("shortages", len(report.Shortages)),
		zap.Float64("required_hours", labor.RequiredHours),
		zap.Float64("available_hours", labor.AvailableHours),
		zap.Bool("sufficient", labor.Sufficient))

	return report, nil
}

// Report serves the cached forecast, recomputing over the default window
// on a miss.
func (s *ForecastService) Report(ctx context.Context) (*ForecastReport, error) {
	if payload, err := s.rdb.Get(ctx, reportCacheKey).Bytes(); err == nil {
		var report ForecastReport
		if err := json.Unmarshal(payload, &report); err == nil {
			return &report, nil
		}
		// corrupt cache entry, drop it and recompute
		s.rdb.Del(ctx, reportCacheKey)
	}
	return s.Run(ctx, time.Time{}, time.Time{})
}

// LaborCapacity answers the standalone capacity query: available hours in
// the window against the current forecast's required hours.
func (s *ForecastService) LaborCapacity(ctx context.Context, start, end time.Time) (*ReportLabor, error) {
	inputs, err := s.loadInputs(ctx)
	if err != nil {
		return nil, err
	}

	explosion, err := planning.ExplodeDepth(inputs.catalog, inputs.snapshot, inputs.lines, inputs.rates, s.cfg.Planning.ExplosionDepth)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	labor, err := planning.LaborCapacity(start, end, inputs.workers, explosion.RequiredHours())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return toReportLabor(labor), nil
}

type planningInputs struct {
	catalog  *planning.Catalog
	snapshot *planning.Snapshot
	lines    []planning.ForecastLine
	rates    planning.ProcessRates
	workers  []planning.WorkerAvailability
}

func (s *ForecastService) loadInputs(ctx context.Context) (*planningInputs, error) {
	skus, err := s.repos.SKU.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("load skus: %w", err)
	}
	edges, err := s.repos.SKU.ListAllEdges(ctx)
	if err != nil {
		return nil, fmt.Errorf("load bom edges: %w", err)
	}
	records, err := s.repos.Inventory.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load inventory: %w", err)
	}
	forecasts, err := s.repos.Forecast.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load forecasts: %w", err)
	}
	processes, err := s.repos.Process.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("load processes: %w", err)
	}
	workers, err := s.repos.Worker.ListActiveWithSchedules(ctx)
	if err != nil {
		return nil, fmt.Errorf("load workers: %w", err)
	}

	stock := make([]planning.StockRecord, 0, len(records))
	for _, r := range records {
		stock = append(stock, planning.StockRecord{
			SKUID:    r.SKUID,
			State:    r.State,
			Quantity: r.Quantity,
		})
	}
	snapshot, err := planning.NewSnapshot(stock)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	lines := make([]planning.ForecastLine, 0, len(forecasts))
	for _, f := range forecasts {
		lines = append(lines, planning.ForecastLine{
			SKUID:             f.SKUID,
			Forecasted:        f.ForecastedQty,
			CurrentInGallatin: f.CurrentInGallatin,
		})
	}

	rates := make(planning.ProcessRates, len(processes))
	for _, p := range processes {
		rates[p.Name] = p.SecondsPerUnit
	}

	availability := make([]planning.WorkerAvailability, 0, len(workers))
	for _, w := range workers {
		wa := planning.WorkerAvailability{WorkerID: w.ID, Active: w.Active}
		for _, sched := range w.Schedules {
			wa.Windows = append(wa.Windows, planning.ScheduleWindow{
				DayOfWeek: sched.DayOfWeek,
				Start:     sched.StartTime,
				End:       sched.EndTime,
				Recurring: sched.Recurring,
				Active:    sched.Active,
			})
		}
		availability = append(availability, wa)
	}

	return &planningInputs{
		catalog:  planning.NewCatalog(toPlanningSKUs(skus), toPlanningEdges(edges)),
		snapshot: snapshot,
		lines:    lines,
		rates:    rates,
		workers:  availability,
	}, nil
}

func buildReport(x *planning.Explosion, labor *planning.LaborReport) *ForecastReport {
	report := &ForecastReport{
		GeneratedAt:   time.Now(),
		Products:      make([]ReportProduct, 0, len(x.Products)),
		Shortages:     make([]ReportShortage, 0),
		ProcessTotals: toProcessLoads(x.ProcessTotals),
		Labor:         toReportLabor(labor),
	}

	for _, p := range x.Products {
		report.Products = append(report.Products, ReportProduct{
			SKUID:        p.SKUID,
			Code:         p.Code,
			Name:         p.Name,
			Forecasted:   p.Forecasted,
			OnHand:       p.OnHand,
			OffSite:      p.OffSite,
			NeedToBuild:  p.NeedToBuild,
			RawMaterials: toComponents(p.RawMaterials),
			Assemblies:   toComponents(p.Assemblies),
			ProcessLoads: toProcessLoads(p.ProcessLoads),
			BuildHours:   p.BuildHours,
		})
	}

	for _, sh := range planning.Shortages(x.RawTotals) {
		report.Shortages = append(report.Shortages, ReportShortage{
			SKUID:     sh.SKUID,
			Code:      sh.Code,
			Name:      sh.Name,
			Needed:    sh.Needed,
			Available: sh.Available,
			Shortfall: sh.Shortfall,
			Consumers: sh.Consumers,
		})
	}

	return report
}

func toComponents(in []planning.ComponentNeed) []ReportComponent {
	out := make([]ReportComponent, 0, len(in))
	for _, cn := range in {
		out = append(out, ReportComponent{
			SKUID:     cn.SKUID,
			Code:      cn.Code,
			Name:      cn.Name,
			Kind:      string(cn.Kind),
			Needed:    cn.Needed,
			Available: cn.Available,
		})
	}
	return out
}

func toProcessLoads(in map[string]*planning.ProcessLoad) []ReportProcessLoad {
	out := make([]ReportProcessLoad, 0, len(in))
	for name, load := range in {
		out = append(out, ReportProcessLoad{
			Process: name,
			Units:   load.Units,
			Seconds: load.Seconds,
			Hours:   load.Seconds / 3600,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Process < out[j].Process })
	return out
}

func toReportLabor(l *planning.LaborReport) *ReportLabor {
	return &ReportLabor{
		Start:          l.Start,
		End:            l.End,
		DaysInRange:    l.DaysInRange,
		WorkerCount:    l.WorkerCount,
		AvailableHours: l.AvailableHours,
		RequiredHours:  l.RequiredHours,
		Sufficient:     l.Sufficient,
	}
}

func (s *ForecastService) invalidateReport(ctx context.Context) {
	s.rdb.Del(ctx, reportCacheKey)
}
