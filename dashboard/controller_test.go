package dashboard

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/StellaShiina/inventory-ui/client"
	"github.com/StellaShiina/inventory-ui/internal/testbackend"
	"github.com/StellaShiina/inventory-ui/inventory"
	"github.com/StellaShiina/inventory-ui/ui"
	"github.com/StellaShiina/inventory-ui/validate"
)

type fakePage struct {
	results    []ui.Result
	rows       []inventory.Row
	renders    int
	summary    inventory.Summary
	resets     int
	modal      *EditForm
	modalOpen  bool
	confirm    bool
	prompts    []string
	navigateTo string
}

func (p *fakePage) Show(r ui.Result) { p.results = append(p.results, r) }
func (p *fakePage) RenderItems(rows []inventory.Row) {
	p.rows = rows
	p.renders++
}
func (p *fakePage) RenderSummary(s inventory.Summary) { p.summary = s }
func (p *fakePage) ResetAddForm()                     { p.resets++ }
func (p *fakePage) OpenEditModal(f EditForm) {
	p.modal = &f
	p.modalOpen = true
}
func (p *fakePage) CloseEditModal() { p.modalOpen = false }
func (p *fakePage) Confirm(prompt string) bool {
	p.prompts = append(p.prompts, prompt)
	return p.confirm
}
func (p *fakePage) Navigate(target string) { p.navigateTo = target }

func (p *fakePage) last() ui.Result { return p.results[len(p.results)-1] }

// fakeAPI is an in-memory backend; err, when set, fails the next call.
type fakeAPI struct {
	items  []inventory.Item
	nextID int64
	err    error
	calls  int
}

func (a *fakeAPI) fail() error {
	a.calls++
	err := a.err
	a.err = nil
	return err
}

func (a *fakeAPI) ListItems(context.Context) (*client.ItemsPage, error) {
	if err := a.fail(); err != nil {
		return nil, err
	}
	return &client.ItemsPage{Items: append([]inventory.Item(nil), a.items...)}, nil
}

func (a *fakeAPI) CreateItem(_ context.Context, d inventory.Draft) (inventory.Item, error) {
	if err := a.fail(); err != nil {
		return inventory.Item{}, err
	}
	a.nextID++
	it := inventory.Item{ID: a.nextID, Name: d.Name, ItemType: d.ItemType, Quantity: d.Quantity, Value: d.Value, Total: inventory.LineTotal(d.Quantity, d.Value)}
	a.items = append(a.items, it)
	return it, nil
}

func (a *fakeAPI) UpdateItem(_ context.Context, id int64, d inventory.Draft) (inventory.Item, error) {
	if err := a.fail(); err != nil {
		return inventory.Item{}, err
	}
	for i := range a.items {
		if a.items[i].ID == id {
			a.items[i] = inventory.Item{ID: id, Name: d.Name, ItemType: d.ItemType, Quantity: d.Quantity, Value: d.Value, Total: inventory.LineTotal(d.Quantity, d.Value)}
			return a.items[i], nil
		}
	}
	return inventory.Item{}, &client.APIError{StatusCode: http.StatusNotFound, Message: "Item not found"}
}

func (a *fakeAPI) DeleteItem(_ context.Context, id int64) error {
	if err := a.fail(); err != nil {
		return err
	}
	for i := range a.items {
		if a.items[i].ID == id {
			a.items = append(a.items[:i], a.items[i+1:]...)
			return nil
		}
	}
	return &client.APIError{StatusCode: http.StatusNotFound, Message: "Item not found"}
}

func (a *fakeAPI) Logout(context.Context) error { return a.fail() }

func widget() inventory.Item {
	return inventory.Item{ID: 1, Name: "Widget", ItemType: "Tool", Quantity: 2, Value: 5.0, Total: 10.0}
}

func loaded(t *testing.T, items ...inventory.Item) (*Controller, *fakeAPI, *fakePage) {
	t.Helper()
	api := &fakeAPI{items: items, nextID: int64(len(items))}
	page := &fakePage{confirm: true}
	c := NewController(api, page, nil)
	require.NoError(t, c.Load(context.Background()))
	return c, api, page
}

func TestLoadRendersList(t *testing.T) {
	c, _, page := loaded(t, widget())
	assert.Equal(t, 1, page.renders)
	assert.Equal(t, inventory.Rows([]inventory.Item{widget()}), page.rows)
	assert.Equal(t, 2, page.summary.TotalQuantity)
	assert.Equal(t, "R$ 10.00", page.summary.FormattedValue())
	assert.Len(t, c.Items(), 1)
}

func TestLoadRefusedNavigatesToEntry(t *testing.T) {
	api := &fakeAPI{err: &client.APIError{StatusCode: http.StatusUnauthorized, Message: "Not authenticated"}}
	page := &fakePage{}
	c := NewController(api, page, nil)

	assert.ErrorIs(t, c.Load(context.Background()), ErrNotAuthenticated)
	assert.Equal(t, EntryPath, page.navigateTo)
	assert.Zero(t, page.renders)
	assert.Empty(t, page.results)
}

func TestLoadTransportFailureLeavesListEmpty(t *testing.T) {
	api := &fakeAPI{err: errors.New("connection refused")}
	page := &fakePage{}
	c := NewController(api, page, nil)

	assert.Error(t, c.Load(context.Background()))
	assert.Empty(t, page.navigateTo)
	assert.Zero(t, page.renders)
	assert.Empty(t, c.Items())
	assert.Equal(t, msgUnreachable, page.last().Message)
}

func TestAddItemKeepsSummaryInStep(t *testing.T) {
	c, _, page := loaded(t, widget())

	adds := []AddForm{
		{Name: "Bolt", ItemType: "Part", Quantity: "10", Value: "0.25"},
		{Name: "Tape", ItemType: "Supply", Quantity: "3", Value: "1.1"},
	}
	for _, f := range adds {
		_, err := c.AddItem(context.Background(), f)
		require.NoError(t, err)

		items := c.Items()
		wantQty, wantValue := 0, 0.0
		for _, it := range items {
			wantQty += it.Quantity
			wantValue += it.Total
		}
		assert.Equal(t, wantQty, page.summary.TotalQuantity)
		assert.InDelta(t, wantValue, page.summary.TotalValue.InexactFloat64(), 1e-9)
		assert.Len(t, page.rows, len(items))
	}
	assert.Equal(t, 2, page.resets)
	assert.Equal(t, "R$ 15.80", page.summary.FormattedValue())
	assert.True(t, page.last().OK())
	assert.Equal(t, MessageTTL, page.last().TTL)
	assert.Equal(t, []string{"Widget", "Bolt", "Tape"}, names(c.Items()))
}

func TestAddItemFailures(t *testing.T) {
	c, api, page := loaded(t)
	callsBefore := api.calls

	_, err := c.AddItem(context.Background(), AddForm{Name: "Bolt", ItemType: "Part", Quantity: "many", Value: "1"})
	assert.ErrorIs(t, err, validate.ErrQuantityNotNumber)
	assert.Equal(t, callsBefore, api.calls, "no request for unparsable input")
	assert.Equal(t, validate.ErrQuantityNotNumber.Error(), page.last().Message)

	api.err = &client.APIError{StatusCode: http.StatusBadRequest, Message: "Quantity must be greater than zero"}
	_, err = c.AddItem(context.Background(), AddForm{Name: "Bolt", ItemType: "Part", Quantity: "0", Value: "1"})
	assert.Error(t, err)
	assert.Equal(t, "Quantity must be greater than zero", page.last().Message)

	api.err = &client.APIError{StatusCode: http.StatusBadRequest}
	_, err = c.AddItem(context.Background(), AddForm{Name: "Bolt", ItemType: "Part", Quantity: "1", Value: "1"})
	assert.Error(t, err)
	assert.Equal(t, msgAddFailed, page.last().Message)

	api.err = errors.New("timeout")
	_, err = c.AddItem(context.Background(), AddForm{Name: "Bolt", ItemType: "Part", Quantity: "1", Value: "1"})
	assert.Error(t, err)
	assert.Equal(t, msgUnreachable, page.last().Message)

	assert.Empty(t, c.Items())
	assert.Zero(t, page.resets)
}

func TestNonFiniteValueIsRejectedLocally(t *testing.T) {
	c, api, page := loaded(t, widget())
	require.True(t, c.OpenEdit(1))
	callsBefore := api.calls

	for _, v := range []string{"NaN", "Inf", "-Inf"} {
		_, err := c.AddItem(context.Background(), AddForm{Name: "Bolt", ItemType: "Part", Quantity: "1", Value: v})
		assert.ErrorIs(t, err, validate.ErrValueNotNumber, "add value %q", v)
		assert.True(t, ui.IsInvalid(err))
		assert.Equal(t, validate.ErrValueNotNumber.Error(), page.last().Message)

		f := c.Editing()
		f.Value = v
		_, err = c.SubmitEdit(context.Background(), f)
		assert.ErrorIs(t, err, validate.ErrValueNotNumber, "edit value %q", v)
		assert.Equal(t, validate.ErrValueNotNumber.Error(), page.last().Message)
	}
	assert.Equal(t, callsBefore, api.calls, "no request for a non-finite value")
	assert.Equal(t, []inventory.Item{widget()}, c.Items())
}

func TestOpenEdit(t *testing.T) {
	c, api, page := loaded(t, widget())
	callsBefore := api.calls

	assert.False(t, c.OpenEdit(42))
	assert.False(t, c.ModalOpen())
	assert.False(t, page.modalOpen)
	assert.Nil(t, page.modal)
	assert.Equal(t, EditForm{}, c.Editing())

	assert.True(t, c.OpenEdit(1))
	assert.True(t, c.ModalOpen())
	assert.Equal(t, &EditForm{ID: 1, Name: "Widget", ItemType: "Tool", Quantity: "2", Value: "5"}, page.modal)
	assert.Equal(t, callsBefore, api.calls, "edit form comes from the local list")
}

func TestSubmitEditReplacesInPlace(t *testing.T) {
	bolt := inventory.Item{ID: 2, Name: "Bolt", ItemType: "Part", Quantity: 10, Value: 0.25, Total: 2.5}
	c, _, page := loaded(t, widget(), bolt)
	require.True(t, c.OpenEdit(1))

	f := c.Editing()
	f.Quantity = "4"
	it, err := c.SubmitEdit(context.Background(), f)
	require.NoError(t, err)
	assert.Equal(t, 20.0, it.Total)

	want := []inventory.Item{{ID: 1, Name: "Widget", ItemType: "Tool", Quantity: 4, Value: 5, Total: 20}, bolt}
	if diff := cmp.Diff(want, c.Items()); diff != "" {
		t.Errorf("items mismatch (-want +got):\n%s", diff)
	}
	assert.False(t, c.ModalOpen())
	assert.False(t, page.modalOpen)
	assert.Equal(t, 14, page.summary.TotalQuantity)
	assert.Equal(t, msgUpdated, page.last().Message)
}

func TestSubmitEditFailureIsSurfaced(t *testing.T) {
	c, api, page := loaded(t, widget())
	require.True(t, c.OpenEdit(1))

	api.err = &client.APIError{StatusCode: http.StatusBadRequest, Message: "Value cannot be negative"}
	f := c.Editing()
	f.Value = "-1"
	_, err := c.SubmitEdit(context.Background(), f)
	assert.Error(t, err)
	assert.Equal(t, "Value cannot be negative", page.last().Message)
	assert.True(t, c.ModalOpen(), "modal stays open so the user can correct the form")
	assert.Equal(t, []inventory.Item{widget()}, c.Items())
}

func TestDeleteItem(t *testing.T) {
	c, api, page := loaded(t, widget())

	page.confirm = false
	assert.ErrorIs(t, c.DeleteItem(context.Background(), 1), ErrDeclined)
	assert.Len(t, c.Items(), 1)
	callsBefore := api.calls

	page.confirm = true
	require.NoError(t, c.DeleteItem(context.Background(), 1))
	assert.Equal(t, callsBefore+1, api.calls)
	assert.Empty(t, c.Items())
	assert.Empty(t, page.rows)
	assert.Equal(t, []string{DeletePrompt, DeletePrompt}, page.prompts)

	html, err := ui.ItemsHTML(page.rows)
	require.NoError(t, err)
	assert.Contains(t, html, ui.EmptyStateMessage)
	assert.Equal(t, 0, page.summary.TotalQuantity)
}

func TestDeleteFailureIsSurfaced(t *testing.T) {
	c, api, page := loaded(t, widget())
	api.err = errors.New("connection reset")

	assert.Error(t, c.DeleteItem(context.Background(), 1))
	assert.Equal(t, msgUnreachable, page.last().Message)
	assert.Len(t, c.Items(), 1)
}

func TestModalClosing(t *testing.T) {
	c, _, page := loaded(t, widget())
	require.True(t, c.OpenEdit(1))

	c.BackdropClick(true)
	assert.True(t, c.ModalOpen())

	c.BackdropClick(false)
	assert.False(t, c.ModalOpen())
	assert.False(t, page.modalOpen)

	require.True(t, c.OpenEdit(1))
	c.CloseModal()
	assert.False(t, page.modalOpen)
}

func TestLogout(t *testing.T) {
	c, api, page := loaded(t)

	api.err = errors.New("offline")
	assert.Error(t, c.Logout(context.Background()))
	assert.Empty(t, page.navigateTo)
	assert.Equal(t, msgUnreachable, page.last().Message)

	require.NoError(t, c.Logout(context.Background()))
	assert.Equal(t, EntryPath, page.navigateTo)
}

func TestDashboardAgainstBackend(t *testing.T) {
	srv := testbackend.New(t)
	api, err := client.New(srv.URL)
	require.NoError(t, err)

	page := &fakePage{confirm: true}
	c := NewController(api, page, nil)
	assert.ErrorIs(t, c.Load(context.Background()), ErrNotAuthenticated)
	assert.Equal(t, EntryPath, page.navigateTo)

	ctx := context.Background()
	_, err = api.Register(ctx, client.Registration{FullName: "Ana", Email: "ana@example.com", Username: "ana", Password: "secret1"})
	require.NoError(t, err)
	_, err = api.Login(ctx, client.Credentials{Username: "ana", Password: "secret1"})
	require.NoError(t, err)

	page = &fakePage{confirm: true}
	c = NewController(api, page, nil)
	require.NoError(t, c.Load(ctx))
	assert.Empty(t, page.rows)

	it, err := c.AddItem(ctx, AddForm{Name: "Widget", ItemType: "Tool", Quantity: "2", Value: "5"})
	require.NoError(t, err)
	assert.Equal(t, "R$ 10.00", page.summary.FormattedValue())

	_, err = c.AddItem(ctx, AddForm{Name: "Widget", ItemType: "Tool", Quantity: "0", Value: "5"})
	assert.Error(t, err)
	assert.Equal(t, "Quantity must be greater than zero", page.last().Message)

	require.True(t, c.OpenEdit(it.ID))
	f := c.Editing()
	f.Name = "Widget XL"
	_, err = c.SubmitEdit(ctx, f)
	require.NoError(t, err)
	assert.Equal(t, "Widget XL", page.rows[0].Name)

	require.NoError(t, c.DeleteItem(ctx, it.ID))
	assert.Empty(t, page.rows)

	require.NoError(t, c.Logout(ctx))
	assert.Equal(t, EntryPath, page.navigateTo)
	assert.ErrorIs(t, c.Load(ctx), ErrNotAuthenticated)
}

func names(items []inventory.Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Name)
	}
	return out
}
