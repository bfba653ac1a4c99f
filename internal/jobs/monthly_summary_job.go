package jobs

import (
	"context"
	"log/slog"
	"time"

	"forwarding/internal/core/application/usecases/queries"
	"forwarding/internal/core/domain/model/access"
	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/report"
	"forwarding/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// DefaultSummarySchedule fires at 01:00 on the first day of every month.
const DefaultSummarySchedule = "0 0 1 1 * *"

// MonthlySummaryJob runs the summary report over the previous calendar
// month and writes it to the log.
type MonthlySummaryJob struct {
	handler  queries.RunReportQueryHandler
	actor    access.Actor
	clock    ports.Clock
	loc      *time.Location
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewMonthlySummaryJob creates the job. The cron runs in loc so that
// "first day of the month" means the business calendar.
func NewMonthlySummaryJob(
	handler queries.RunReportQueryHandler,
	actor access.Actor,
	clock ports.Clock,
	loc *time.Location,
	schedule string,
	logger *slog.Logger,
) *MonthlySummaryJob {
	if schedule == "" {
		schedule = DefaultSummarySchedule
	}
	return &MonthlySummaryJob{
		handler:  handler,
		actor:    actor,
		clock:    clock,
		loc:      loc,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds(), cron.WithLocation(loc)),
		logger:   logger.With("component", "monthly_summary_job"),
	}
}

// Start registers the schedule and starts the cron.
func (j *MonthlySummaryJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		if _, err := j.RunOnce(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Monthly summary job failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Monthly summary job started", "schedule", j.schedule)
	return nil
}

// Stop stops the cron and waits for a running summary to finish.
func (j *MonthlySummaryJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Monthly summary job stopped")
}

// RunOnce builds the summary of the month before the current one.
func (j *MonthlySummaryJob) RunOnce(ctx context.Context) (report.Result, error) {
	month := PreviousMonth(j.clock.Now(), j.loc)
	from, to := month.From(), month.To()

	query, err := queries.NewRunReportQuery(j.actor, string(report.Summary), &from, &to)
	if err != nil {
		return report.Result{}, err
	}
	result, err := j.handler.Handle(ctx, query)
	if err != nil {
		return report.Result{}, err
	}

	attrs := []any{"from", result.From, "to", result.To}
	if summary, ok := result.Data.(report.SummaryReport); ok {
		attrs = append(attrs,
			"orders_created", summary.OrdersCreated,
			"combined_shipments_created", summary.CombinedShipmentsCreated,
			"orders_by_status", summary.OrdersByStatus,
		)
	}
	j.logger.InfoContext(ctx, "Monthly summary", attrs...)
	return result, nil
}

// PreviousMonth returns the calendar month before the one now falls in.
func PreviousMonth(now time.Time, loc *time.Location) kernel.DateRange {
	local := now.In(loc)
	lastDayOfPrevious := time.Date(local.Year(), local.Month(), 1, 12, 0, 0, 0, loc).AddDate(0, 0, -1)
	return kernel.MonthOf(lastDayOfPrevious, loc)
}
