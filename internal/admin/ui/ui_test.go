package ui

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/cmsadmin/pkg/cmssdk"
	"github.com/aussiebroadwan/cmsadmin/pkg/platformsdk"
	"github.com/aussiebroadwan/cmsadmin/pkg/runtimeconfig"
	"github.com/aussiebroadwan/cmsadmin/pkg/theme"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func testStyles(out *bytes.Buffer) Styles {
	return NewStyles(out, theme.Generate("#6d28d9", "violet"))
}

func TestIsTerminal(t *testing.T) {
	t.Parallel()
	require.False(t, IsTerminal(&bytes.Buffer{}))
}

func TestLoadWithoutTerminal(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	s := testStyles(&out)

	v, err := Load(context.Background(), &out, s, "fetching", func(context.Context) (int, error) {
		return 42, nil
	})
	require.NoError(t, err)
	require.Equal(t, 42, v)
	require.Empty(t, out.String(), "no spinner frames outside a terminal")

	_, err = Load(context.Background(), &out, s, "fetching", func(context.Context) (string, error) {
		return "", errors.New("boom")
	})
	require.EqualError(t, err, "boom")
}

func TestSpinnerModel(t *testing.T) {
	t.Parallel()

	m := newSpinnerModel("loading content", lipgloss.NewStyle())
	require.NotNil(t, m.Init())
	require.Contains(t, m.View(), "loading content")

	next, cmd := m.Update(doneMsg{})
	require.NotNil(t, cmd)
	require.Empty(t, next.View())
}

func TestBanner(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	banner := testStyles(&out).Banner("v1.2.3", runtimeconfig.Config{
		CMSAPIURL:      "https://cms.example.com",
		PlatformAPIURL: "https://shop.example.com",
	})

	require.Contains(t, banner, "v1.2.3")
	require.Contains(t, banner, "https://cms.example.com")
	require.Contains(t, banner, "https://shop.example.com")
}

func TestCMSDashboard(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	view := testStyles(&out).CMSDashboard(CMSDashboard{
		Overview: cmssdk.AnalyticsOverview{TotalContent: 120, PublishedContent: 90, DraftContent: 30, PageViews: 4321},
		Top:      []cmssdk.TopContent{{EntryID: "e1", Title: "Hello World", Views: 999}},
		Stats:    []cmssdk.ContentStat{{Date: "2026-10-01", Created: 3, Published: 2, Updated: 7}},
	})

	for _, want := range []string{"120 (90 published)", "4321", "Hello World", "999", "2026-10-01"} {
		require.Contains(t, view, want)
	}
}

func TestBoutiqueDashboard(t *testing.T) {
	t.Parallel()

	fake := gofakeit.New(0)
	d := BoutiqueDashboard{
		OrdersTotal: 57,
		Orders: []platformsdk.Order{
			{OrderNumber: "ORD-1", Status: platformsdk.OrderPending, Total: decimal.RequireFromString("10.50"), Currency: "AUD", CreatedAt: time.Now()},
			{OrderNumber: "ORD-2", Status: platformsdk.OrderPaid, Total: decimal.RequireFromString("4.25"), Currency: "AUD", CreatedAt: time.Now()},
			{OrderNumber: "ORD-3", Status: platformsdk.OrderCancelled, Total: decimal.RequireFromString("100"), Currency: "AUD", CreatedAt: time.Now()},
		},
		LowStock: []platformsdk.InventoryItem{
			{SKU: "TEE-S", Name: "Tee (S)", Quantity: 2, ReorderLevel: 5},
		},
		Employees: []platformsdk.Employee{
			{FirstName: fake.FirstName(), LastName: fake.LastName(), Position: fake.JobTitle(), Status: "active"},
		},
		EmployeesTotal: 1,
	}

	require.True(t, decimal.RequireFromString("14.75").Equal(d.Revenue()), "cancelled orders excluded")
	require.Equal(t, 2, d.PendingOrders())

	var out bytes.Buffer
	view := testStyles(&out).BoutiqueDashboard(d)
	for _, want := range []string{"57", "14.75", "ORD-1", "TEE-S", d.Employees[0].FullName()} {
		require.Contains(t, view, want)
	}
}

func TestTable(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	rendered := testStyles(&out).Table([]string{"ID", "Title"}, [][]string{{"1", "First"}, {"2", "Second"}})

	lines := strings.Split(rendered, "\n")
	require.Greater(t, len(lines), 3)
	require.Contains(t, rendered, "Title")
	require.Contains(t, rendered, "Second")
}

func TestMarkdown(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	rendered, err := RenderMarkdown(&out, "# Heading\n\nSome **bold** text.", 60)
	require.NoError(t, err)
	require.Contains(t, rendered, "Heading")
	require.Contains(t, rendered, "bold")

	body, ok := MarkdownField(map[string]any{"title": "x", "content": "hello"})
	require.True(t, ok)
	require.Equal(t, "hello", body)

	_, ok = MarkdownField(map[string]any{"body": "   "})
	require.False(t, ok)
}
