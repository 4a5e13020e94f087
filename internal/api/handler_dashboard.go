package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"repair-orders-backend/internal/model"
	"repair-orders-backend/internal/order"
	"repair-orders-backend/internal/report"
)

// dashboardResponse is the aggregate payload for the admin dashboard.
type dashboardResponse struct {
	TotalOrders       int64                `json:"totalOrders"`
	PendingOrders     int64                `json:"pendingOrders"`
	SuccessOrders     int64                `json:"successOrders"`
	RejectedOrders    int64                `json:"rejectedOrders"`
	TotalUsers        int64                `json:"totalUsers"`
	TotalMonthly      int64                `json:"totalMonthly"`
	TotalWeekly       int64                `json:"totalWeekly"`
	PendingOrdersData []model.Order        `json:"pendingOrdersData"`
	ChartData         []report.MonthBucket `json:"chartData"`
}

// Dashboard handles GET /api/admin/dashboard. The sub-queries are
// independent, so they run concurrently; if any one fails the whole
// payload fails rather than rendering a partial dashboard. The snapshot
// is not point-in-time consistent across counters, which is acceptable
// for a reporting view.
func (h *Handler) Dashboard(c *gin.Context) {
	now := h.now()

	var (
		resp           dashboardResponse
		completedTimes []time.Time
	)

	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() (err error) {
		resp.TotalOrders, err = h.store.CountOrders(ctx)
		return
	})
	g.Go(func() (err error) {
		resp.PendingOrders, err = h.store.CountOrdersByStatus(ctx, order.StatusRequested)
		return
	})
	g.Go(func() (err error) {
		resp.SuccessOrders, err = h.store.CountOrdersByStatus(ctx, order.StatusCompleted)
		return
	})
	g.Go(func() (err error) {
		resp.RejectedOrders, err = h.store.CountOrdersByStatus(ctx, order.StatusRejected)
		return
	})
	g.Go(func() (err error) {
		resp.TotalUsers, err = h.store.CountUsers(ctx)
		return
	})
	g.Go(func() (err error) {
		resp.TotalMonthly, err = h.store.CountCompletedSince(ctx, report.MonthStart(now))
		return
	})
	g.Go(func() (err error) {
		resp.TotalWeekly, err = h.store.CountCompletedSince(ctx, report.WeekStart(now))
		return
	})
	g.Go(func() (err error) {
		resp.PendingOrdersData, err = h.store.PendingOrders(ctx)
		return
	})
	g.Go(func() (err error) {
		completedTimes, err = h.store.CompletedCreatedSince(ctx, report.SeriesStart(now))
		return
	})

	if err := g.Wait(); err != nil {
		respondDomainError(c, err)
		return
	}

	resp.ChartData = report.MonthlySeries(now, completedTimes)

	respond(c, http.StatusOK, "Success", resp)
}
