package web

import (
	"errors"

	"go-desk/internal/auth"
	"go-desk/internal/clients"
	"go-desk/internal/models"
	"go-desk/internal/session"

	"github.com/gofiber/fiber/v2"
)

const (
	msgInvalidLogin   = "Usuário ou senha incorretos"
	msgDuplicateLogin = "Usuário já existe"
	msgRequiredFields = "Preencha todos os campos obrigatórios"
	msgDuplicateAdd   = "ID RustDesk já existe"
	msgDuplicateEdit  = "Este ID RustDesk já está cadastrado em outro cliente."
	livenessMessage   = "Servidor está vivo!"
	dashboardPath     = "/dashboard"
	loginPath         = "/"
)

type handlers struct {
	Deps
}

func SetupRoutes(app *fiber.App, deps Deps) {
	h := &handlers{Deps: deps}
	guard := deps.Sessions.Guard()

	app.Get("/", h.loginPage)
	app.Post("/", h.login)
	// The login form posts here.
	app.Post("/login", h.login)
	app.Get("/register", h.registerPage)
	app.Post("/register", h.register)
	app.Get("/logout", h.logout)
	app.Get("/teste", h.liveness)

	app.Get("/dashboard", guard, h.dashboard)
	app.Post("/dashboard", guard, h.dashboard)
	app.Get("/add", guard, h.addPage)
	app.Post("/add", guard, h.add)
	app.Get("/editar/:id", guard, h.editPage)
	app.Post("/editar/:id", guard, h.edit)
	app.Get("/conectar/:id", guard, h.connect)
	app.Get("/finalizar/:id", guard, h.finish)
	app.Get("/excluir/:id", guard, h.remove)
}

func clientID(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "invalid client id")
	}
	return uint(id), nil
}

func (h *handlers) loginPage(c *fiber.Ctx) error {
	return c.Render("login", fiber.Map{})
}

func (h *handlers) login(c *fiber.Ctx) error {
	var form loginForm
	if err := bindForm(c, &form); err != nil {
		return c.Render("login", fiber.Map{"Error": msgInvalidLogin})
	}

	sess, err := h.Auth.Login(c.UserContext(), form.Login, form.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		h.Logger.Info("login rejected", "usuario", form.Login)
		return c.Render("login", fiber.Map{"Error": msgInvalidLogin})
	}
	if err != nil {
		return err
	}

	h.Sessions.Issue(c, sess)
	return c.Redirect(dashboardPath, fiber.StatusSeeOther)
}

func (h *handlers) registerPage(c *fiber.Ctx) error {
	return c.Render("register", fiber.Map{"Form": registerForm{}})
}

func (h *handlers) register(c *fiber.Ctx) error {
	var form registerForm
	if err := bindForm(c, &form); err != nil {
		return c.Render("register", fiber.Map{"Error": msgRequiredFields, "Form": form})
	}

	sess, err := h.Auth.Register(c.UserContext(), form.Name, form.Login, form.Password)
	if errors.Is(err, auth.ErrDuplicateLogin) {
		return c.Render("register", fiber.Map{"Error": msgDuplicateLogin, "Form": form})
	}
	if err != nil {
		return err
	}

	h.Logger.Info("technician registered", "technician_id", sess.TechnicianID)
	h.Sessions.Issue(c, sess)
	return c.Redirect(dashboardPath, fiber.StatusSeeOther)
}

func (h *handlers) logout(c *fiber.Ctx) error {
	h.Sessions.Clear(c)
	return c.Redirect(loginPath)
}

func (h *handlers) liveness(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"mensagem": livenessMessage})
}

// dashboard lists clients, optionally filtered by the busca parameter from
// either the query string or the posted form.
func (h *handlers) dashboard(c *fiber.Ctx) error {
	query := c.FormValue("busca")

	list, err := h.Clients.Search(c.UserContext(), query)
	if err != nil {
		return err
	}

	return c.Render("dashboard", fiber.Map{
		"Clientes": list,
		"Busca":    query,
	})
}

func (h *handlers) addPage(c *fiber.Ctx) error {
	return c.Render("add_cliente", fiber.Map{"Form": clientForm{}})
}

func (h *handlers) add(c *fiber.Ctx) error {
	var form clientForm
	if err := bindForm(c, &form); err != nil {
		return c.Render("add_cliente", fiber.Map{"Error": msgRequiredFields, "Form": form})
	}

	created, err := h.Clients.Create(c.UserContext(), form.input())
	if errors.Is(err, clients.ErrDuplicateConnectionID) {
		return c.Render("add_cliente", fiber.Map{"Error": msgDuplicateAdd, "Form": form})
	}
	if err != nil {
		return err
	}

	h.Logger.Info("client created", "client_id", created.ID, "technician_id", session.TechnicianID(c))
	return c.Redirect(dashboardPath, fiber.StatusSeeOther)
}

func (h *handlers) editPage(c *fiber.Ctx) error {
	id, err := clientID(c)
	if err != nil {
		return err
	}

	cl, err := h.Clients.Get(c.UserContext(), id)
	if errors.Is(err, clients.ErrNotFound) {
		return fiber.ErrNotFound
	}
	if err != nil {
		return err
	}

	return c.Render("editar_cliente", fiber.Map{"Cliente": cl})
}

func (h *handlers) edit(c *fiber.Ctx) error {
	id, err := clientID(c)
	if err != nil {
		return err
	}

	var form clientForm
	if err := bindForm(c, &form); err != nil {
		return h.renderEditError(c, id, msgRequiredFields)
	}

	_, err = h.Clients.Update(c.UserContext(), id, form.input())
	switch {
	case errors.Is(err, clients.ErrNotFound):
		return fiber.ErrNotFound
	case errors.Is(err, clients.ErrDuplicateConnectionID):
		return h.renderEditError(c, id, msgDuplicateEdit)
	case err != nil:
		return err
	}

	return c.Redirect(dashboardPath, fiber.StatusSeeOther)
}

// renderEditError re-displays the stored client with msg.
func (h *handlers) renderEditError(c *fiber.Ctx, id uint, msg string) error {
	cl, err := h.Clients.Get(c.UserContext(), id)
	if errors.Is(err, clients.ErrNotFound) {
		return fiber.ErrNotFound
	}
	if err != nil {
		return err
	}
	return c.Render("editar_cliente", fiber.Map{"Cliente": cl, "Error": msg})
}

// connect opens RustDesk and marks the client connected whether or not the
// launch worked.
func (h *handlers) connect(c *fiber.Ctx) error {
	id, err := clientID(c)
	if err != nil {
		return err
	}

	cl, err := h.Clients.Get(c.UserContext(), id)
	if errors.Is(err, clients.ErrNotFound) {
		return fiber.ErrNotFound
	}
	if err != nil {
		return err
	}

	h.Launcher.Launch(cl)

	if err := h.Clients.SetStatus(c.UserContext(), id, models.StatusConnected); err != nil {
		return err
	}
	return c.Redirect(dashboardPath)
}

func (h *handlers) finish(c *fiber.Ctx) error {
	id, err := clientID(c)
	if err != nil {
		return err
	}

	if err := h.Clients.SetStatus(c.UserContext(), id, models.StatusDisconnected); err != nil {
		return err
	}
	return c.Redirect(dashboardPath)
}

func (h *handlers) remove(c *fiber.Ctx) error {
	id, err := clientID(c)
	if err != nil {
		return err
	}

	if err := h.Clients.Delete(c.UserContext(), id); err != nil {
		return err
	}
	h.Logger.Info("client deleted", "client_id", id, "technician_id", session.TechnicianID(c))
	return c.Redirect(dashboardPath, fiber.StatusSeeOther)
}
