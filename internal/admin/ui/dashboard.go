package ui

import (
	"fmt"
	"strconv"

	"github.com/aussiebroadwan/cmsadmin/pkg/cmssdk"
	"github.com/aussiebroadwan/cmsadmin/pkg/platformsdk"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// ============================================================================
// CMS dashboard
// ============================================================================

type CMSDashboard struct {
	Overview cmssdk.AnalyticsOverview
	Top      []cmssdk.TopContent
	Stats    []cmssdk.ContentStat
}

func (s Styles) stat(label, value string) string {
	return s.Card.Render(lipgloss.JoinVertical(lipgloss.Left,
		s.Label.Render(label),
		s.Value.Render(value),
	))
}

// CMSDashboard renders analytics cards, recent activity and top content.
func (s Styles) CMSDashboard(d CMSDashboard) string {
	o := d.Overview

	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		s.stat("Content", fmt.Sprintf("%d (%d published)", o.TotalContent, o.PublishedContent)),
		s.stat("Drafts", strconv.Itoa(o.DraftContent)),
		s.stat("Media", strconv.Itoa(o.TotalMedia)),
		s.stat("Users", fmt.Sprintf("%d (%d active)", o.TotalUsers, o.ActiveUsers)),
		s.stat("Page views", strconv.Itoa(o.PageViews)),
	)

	sections := []string{s.Title.Render("CMS overview"), cards}

	if len(d.Stats) > 0 {
		rows := make([][]string, len(d.Stats))
		for i, st := range d.Stats {
			rows[i] = []string{st.Date, strconv.Itoa(st.Created), strconv.Itoa(st.Published), strconv.Itoa(st.Updated)}
		}
		sections = append(sections, "", s.Title.Render("Activity"),
			s.Table([]string{"Date", "Created", "Published", "Updated"}, rows))
	}

	if len(d.Top) > 0 {
		rows := make([][]string, len(d.Top))
		for i, t := range d.Top {
			rows[i] = []string{strconv.Itoa(i + 1), t.Title, strconv.Itoa(t.Views)}
		}
		sections = append(sections, "", s.Title.Render("Top content"),
			s.Table([]string{"#", "Title", "Views"}, rows))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// ============================================================================
// Boutique dashboard
// ============================================================================

type BoutiqueDashboard struct {
	Orders         []platformsdk.Order
	OrdersTotal    int
	LowStock       []platformsdk.InventoryItem
	Employees      []platformsdk.Employee
	EmployeesTotal int
}

// Revenue sums order totals, skipping cancelled and refunded orders.
// Orders in different currencies are summed as-is.
func (d BoutiqueDashboard) Revenue() decimal.Decimal {
	sum := decimal.Zero
	for _, o := range d.Orders {
		if o.Status == platformsdk.OrderCancelled || o.Status == platformsdk.OrderRefunded {
			continue
		}
		sum = sum.Add(o.Total)
	}
	return sum
}

// PendingOrders counts orders that still need action.
func (d BoutiqueDashboard) PendingOrders() int {
	n := 0
	for _, o := range d.Orders {
		if o.Status == platformsdk.OrderPending || o.Status == platformsdk.OrderPaid {
			n++
		}
	}
	return n
}

// BoutiqueDashboard renders order, stock and staff summaries.
func (s Styles) BoutiqueDashboard(d BoutiqueDashboard) string {
	lowStock := s.Value.Render(strconv.Itoa(len(d.LowStock)))
	if len(d.LowStock) > 0 {
		lowStock = s.Danger.Render(strconv.Itoa(len(d.LowStock)))
	}

	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		s.stat("Orders", strconv.Itoa(d.OrdersTotal)),
		s.stat("Pending", strconv.Itoa(d.PendingOrders())),
		s.stat("Revenue (recent)", d.Revenue().StringFixed(2)),
		s.Card.Render(lipgloss.JoinVertical(lipgloss.Left, s.Label.Render("Low stock"), lowStock)),
		s.stat("Staff", strconv.Itoa(d.EmployeesTotal)),
	)

	sections := []string{s.Title.Render("Boutique overview"), cards}

	if len(d.Orders) > 0 {
		rows := make([][]string, len(d.Orders))
		for i, o := range d.Orders {
			rows[i] = []string{o.OrderNumber, string(o.Status), o.Total.StringFixed(2) + " " + o.Currency, o.CreatedAt.Format("2006-01-02")}
		}
		sections = append(sections, "", s.Title.Render("Recent orders"),
			s.Table([]string{"Order", "Status", "Total", "Placed"}, rows))
	}

	if len(d.LowStock) > 0 {
		rows := make([][]string, len(d.LowStock))
		for i, it := range d.LowStock {
			rows[i] = []string{it.SKU, it.Name, strconv.Itoa(it.Available()), strconv.Itoa(it.ReorderLevel)}
		}
		sections = append(sections, "", s.Danger.Render("Low stock"),
			s.Table([]string{"SKU", "Item", "Available", "Reorder at"}, rows))
	}

	if len(d.Employees) > 0 {
		rows := make([][]string, len(d.Employees))
		for i, e := range d.Employees {
			rows[i] = []string{e.FullName(), e.Position, e.Status}
		}
		sections = append(sections, "", s.Title.Render("Staff"),
			s.Table([]string{"Name", "Position", "Status"}, rows))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
