package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rohanthewiz/element"

	"github.com/StellaShiina/inventory-ui/db"
	"github.com/StellaShiina/inventory-ui/inventory"
	"github.com/StellaShiina/inventory-ui/middleware"
	"github.com/StellaShiina/inventory-ui/ui"
)

const htmlContentType = "text/html; charset=utf-8"

func page(title string, body func(b *element.Builder) any) string {
	b := element.NewBuilder()
	b.Html("lang", "en").R(
		b.Head().R(
			b.Meta("charset", "UTF-8"),
			b.Meta("name", "viewport", "content", "width=device-width, initial-scale=1.0"),
			b.Title().T(title),
		),
		b.Body().R(body(b)),
	)
	return "<!DOCTYPE html>" + b.String()
}

func field(b *element.Builder, id, label, typ string) any {
	return b.Div("class", "form-group").R(
		b.Label("for", id).T(label),
		b.Input("type", typ, "id", id, "name", id),
	)
}

func messages(b *element.Builder) any {
	return b.Div().R(
		b.Div("class", "message error", "id", "errorMessage"),
		b.Div("class", "message success", "id", "successMessage"),
	)
}

// LoginPage renders the entry page. Credentials are posted as JSON to /api/login.
func LoginPage(c *gin.Context) {
	html := page("Login - Inventory", func(b *element.Builder) any {
		return b.Div("class", "auth-container").R(
			b.H1().T("Inventory"),
			messages(b),
			b.Form("id", "loginForm").R(
				field(b, "username", "Username", "text"),
				field(b, "password", "Password", "password"),
				b.Button("type", "submit").R(b.Span("id", "submitText").T("Sign in")),
			),
			b.A("href", "/register").T("Create an account"),
		)
	})
	c.Data(http.StatusOK, htmlContentType, []byte(html))
}

// RegisterPage renders the signup form posted to /api/register.
func RegisterPage(c *gin.Context) {
	html := page("Register - Inventory", func(b *element.Builder) any {
		return b.Div("class", "auth-container").R(
			b.H1().T("Create account"),
			messages(b),
			b.Form("id", "registerForm").R(
				field(b, "fullName", "Full name", "text"),
				field(b, "email", "Email", "email"),
				field(b, "phone", "Phone", "tel"),
				field(b, "username", "Username", "text"),
				field(b, "password", "Password", "password"),
				field(b, "confirmPassword", "Confirm password", "password"),
				b.Label().R(b.Input("type", "checkbox", "id", "acceptTerms"), b.Span().T("I accept the terms of use")),
				b.Button("type", "submit").R(b.Span("id", "submitText").T("Create account")),
			),
			b.A("href", "/").T("Back to login"),
		)
	})
	c.Data(http.StatusOK, htmlContentType, []byte(html))
}

// DashboardPage renders the dashboard with the item table and summary
// already filled in for the signed-in user.
func DashboardPage(c *gin.Context) {
	items, err := userItems(middleware.UserID(c))
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load items"})
		return
	}
	records := db.Records(items)
	table, err := ui.ItemsHTML(inventory.Rows(records))
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render items"})
		return
	}
	summary := inventory.Summarize(records)

	html := page("Dashboard - Inventory", func(b *element.Builder) any {
		return b.Div("class", "dashboard").R(
			b.Div("class", "header").R(
				b.H1().T("Inventory"),
				b.Span("class", "user").T(c.GetString(middleware.UsernameKey)),
				b.Button("id", "logoutButton", "type", "button").T("Logout"),
			),
			b.Div("class", "summary").R(
				b.Span("id", "totalItems").T(strconv.Itoa(summary.TotalQuantity)),
				b.Span("id", "totalValue").T(summary.FormattedValue()),
			),
			b.Div("class", "message", "id", "formMessage"),
			b.Form("id", "addItemForm").R(
				field(b, "itemName", "Name", "text"),
				field(b, "itemType", "Type", "text"),
				field(b, "itemQuantity", "Quantity", "number"),
				field(b, "itemValue", "Unit value", "number"),
				b.Button("type", "submit").T("Add product"),
			),
			b.Div("id", "itemsContainer").T(table),
			b.Div("class", "modal", "id", "editModal").R(
				b.Form("class", "modal-content", "id", "editForm").R(
					b.Input("type", "hidden", "id", "editItemId"),
					field(b, "editItemName", "Name", "text"),
					field(b, "editItemType", "Type", "text"),
					field(b, "editItemQuantity", "Quantity", "number"),
					field(b, "editItemValue", "Unit value", "number"),
					b.Button("type", "submit").T("Save"),
				),
			),
		)
	})
	c.Data(http.StatusOK, htmlContentType, []byte(html))
}
