// Package dashboard keeps the user's item table in step with the backend.
//
// The controller owns the client-side list. Every mutation is applied only
// after the server confirms it, and the whole table and summary are then
// rendered again from the list.
package dashboard

import (
	"context"
	"errors"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/StellaShiina/inventory-ui/client"
	"github.com/StellaShiina/inventory-ui/inventory"
	"github.com/StellaShiina/inventory-ui/ui"
	"github.com/StellaShiina/inventory-ui/validate"
)

// EntryPath is the login page.
const EntryPath = "/"

// MessageTTL is how long dashboard messages stay on screen.
const MessageTTL = 3500 * time.Millisecond

const (
	DeletePrompt = "Are you sure you want to delete this product?"

	msgAdded        = "OK - Product added!"
	msgUpdated      = "OK - Product updated!"
	msgDeleted      = "OK - Product deleted!"
	msgAddFailed    = "Could not add product"
	msgUpdateFailed = "Could not update product"
	msgDeleteFailed = "Could not delete product"
	msgLoadFailed   = "Could not load products"
	msgLogoutFailed = "Could not log out"
	msgUnreachable  = "Could not connect to the server"
)

// ErrNotAuthenticated is returned by Load when the server refuses the list;
// the page has been sent back to the entry page.
var ErrNotAuthenticated = errors.New("not authenticated")

// ErrDeclined is returned by DeleteItem when the user does not confirm.
var ErrDeclined = errors.New("deletion not confirmed")

// Page is the dashboard's front end.
type Page interface {
	Show(ui.Result)
	// RenderItems replaces the whole table; an empty slice means the
	// empty-state placeholder.
	RenderItems(rows []inventory.Row)
	RenderSummary(inventory.Summary)
	ResetAddForm()
	OpenEditModal(EditForm)
	CloseEditModal()
	Confirm(prompt string) bool
	Navigate(target string)
}

// API is the slice of the backend the dashboard uses.
type API interface {
	ListItems(ctx context.Context) (*client.ItemsPage, error)
	CreateItem(ctx context.Context, d inventory.Draft) (inventory.Item, error)
	UpdateItem(ctx context.Context, id int64, d inventory.Draft) (inventory.Item, error)
	DeleteItem(ctx context.Context, id int64) error
	Logout(ctx context.Context) error
}

// AddForm holds the add-item fields as typed.
type AddForm struct {
	Name     string
	ItemType string
	Quantity string
	Value    string
}

// EditForm holds the edit modal's fields.
type EditForm struct {
	ID       int64
	Name     string
	ItemType string
	Quantity string
	Value    string
}

func editFormFor(it inventory.Item) EditForm {
	return EditForm{
		ID:       it.ID,
		Name:     it.Name,
		ItemType: it.ItemType,
		Quantity: strconv.Itoa(it.Quantity),
		Value:    strconv.FormatFloat(it.Value, 'f', -1, 64),
	}
}

// Controller is not safe for concurrent use.
type Controller struct {
	api    API
	page   Page
	logger *zap.Logger

	items     inventory.List
	modalOpen bool
	editing   EditForm
}

func NewController(api API, page Page, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{api: api, page: page, logger: logger}
}

// Items returns a copy of the current list.
func (c *Controller) Items() []inventory.Item { return c.items.Items() }

func (c *Controller) Summary() inventory.Summary { return c.items.Summary() }

func (c *Controller) ModalOpen() bool { return c.modalOpen }

// Editing returns the form last loaded into the edit modal.
func (c *Controller) Editing() EditForm { return c.editing }

// Load fetches the item list and renders it. A refusal from the server sends
// the page to the entry page; a transport failure leaves the list empty.
func (c *Controller) Load(ctx context.Context) error {
	page, err := c.api.ListItems(ctx)
	if err != nil {
		var apiErr *client.APIError
		if errors.As(err, &apiErr) {
			c.logger.Info("item list refused, returning to entry page", zap.Int("status", apiErr.StatusCode))
			c.page.Navigate(EntryPath)
			return ErrNotAuthenticated
		}
		c.logger.Error("loading items", zap.Error(err))
		c.show(ui.FailureFrom(err, msgLoadFailed, msgUnreachable))
		return err
	}
	c.items.Replace(page.Items)
	c.render()
	return nil
}

// Render draws the table and summary from the current list.
func (c *Controller) Render() { c.render() }

func (c *Controller) render() {
	c.page.RenderItems(c.items.Rows())
	c.page.RenderSummary(c.items.Summary())
}

func (c *Controller) show(r ui.Result) {
	c.page.Show(r.WithTTL(MessageTTL))
}

// AddItem submits the add form and appends the stored record.
func (c *Controller) AddItem(ctx context.Context, f AddForm) (inventory.Item, error) {
	draft, err := validate.ParseDraft(f.Name, f.ItemType, f.Quantity, f.Value)
	if err != nil {
		err = ui.Invalid(err)
		c.show(ui.FailureFrom(err, msgAddFailed, msgUnreachable))
		return inventory.Item{}, err
	}

	it, err := c.api.CreateItem(ctx, draft)
	if err != nil {
		c.logger.Warn("adding item", zap.String("name", draft.Name), zap.Error(err))
		c.show(ui.FailureFrom(err, msgAddFailed, msgUnreachable))
		return inventory.Item{}, err
	}

	c.items.Append(it)
	c.render()
	c.page.ResetAddForm()
	c.show(ui.Success(msgAdded))
	return it, nil
}

// OpenEdit fills the edit modal from the local copy of item id. An id that
// is not in the list is ignored.
func (c *Controller) OpenEdit(id int64) bool {
	it, ok := c.items.Find(id)
	if !ok {
		return false
	}
	c.editing = editFormFor(it)
	c.modalOpen = true
	c.page.OpenEditModal(c.editing)
	return true
}

// SubmitEdit sends the edit form and swaps the stored record into the list.
func (c *Controller) SubmitEdit(ctx context.Context, f EditForm) (inventory.Item, error) {
	draft, err := validate.ParseDraft(f.Name, f.ItemType, f.Quantity, f.Value)
	if err != nil {
		err = ui.Invalid(err)
		c.show(ui.FailureFrom(err, msgUpdateFailed, msgUnreachable))
		return inventory.Item{}, err
	}

	it, err := c.api.UpdateItem(ctx, f.ID, draft)
	if err != nil {
		c.logger.Warn("updating item", zap.Int64("id", f.ID), zap.Error(err))
		c.show(ui.FailureFrom(err, msgUpdateFailed, msgUnreachable))
		return inventory.Item{}, err
	}

	if !c.items.Update(it) {
		c.logger.Warn("updated item is not in the local list", zap.Int64("id", it.ID))
	}
	c.render()
	c.CloseModal()
	c.show(ui.Success(msgUpdated))
	return it, nil
}

// DeleteItem asks the page for confirmation, then deletes item id.
func (c *Controller) DeleteItem(ctx context.Context, id int64) error {
	if !c.page.Confirm(DeletePrompt) {
		return ErrDeclined
	}
	if err := c.api.DeleteItem(ctx, id); err != nil {
		c.logger.Warn("deleting item", zap.Int64("id", id), zap.Error(err))
		c.show(ui.FailureFrom(err, msgDeleteFailed, msgUnreachable))
		return err
	}
	c.items.Remove(id)
	c.render()
	c.show(ui.Success(msgDeleted))
	return nil
}

// CloseModal hides the edit modal.
func (c *Controller) CloseModal() {
	c.modalOpen = false
	c.page.CloseEditModal()
}

// BackdropClick handles a click on the modal overlay; clicks that land on
// the modal's content keep it open.
func (c *Controller) BackdropClick(onContent bool) {
	if c.modalOpen && !onContent {
		c.CloseModal()
	}
}

// Logout ends the session and returns to the entry page.
func (c *Controller) Logout(ctx context.Context) error {
	if err := c.api.Logout(ctx); err != nil {
		c.logger.Warn("logging out", zap.Error(err))
		c.show(ui.FailureFrom(err, msgLogoutFailed, msgUnreachable))
		return err
	}
	c.page.Navigate(EntryPath)
	return nil
}
