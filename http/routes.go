package http

import (
	"log/slog"
	"net/http"

	"github.com/sagarc03/apitour"
)

var (
	helloParams = []apitour.ParameterSpec{
		apitour.Header("hello", apitour.KindString, apitour.Required()),
	}

	listUsersParams = []apitour.ParameterSpec{
		apitour.Query("page", apitour.KindInt, apitour.Default(1), apitour.With(apitour.Gt(0))),
		apitour.Query("size", apitour.KindInt, apitour.Default(10), apitour.With(apitour.Le(100))),
	}

	userIDParams = []apitour.ParameterSpec{
		apitour.Path("id", apitour.KindInt, apitour.With(apitour.Ge(1))),
	}

	licenceParams = []apitour.ParameterSpec{
		apitour.Path("licence", apitour.KindString, apitour.With(apitour.Pattern(`\w{2}-\d{3}-\w{2}`))),
	}

	createUserParams = []apitour.ParameterSpec{
		apitour.Body("user",
			apitour.BodyField("name", apitour.KindString, apitour.Required()),
			apitour.BodyField("age", apitour.KindInt, apitour.Required()),
		),
	}

	createUserFormParams = []apitour.ParameterSpec{
		apitour.Form("name", apitour.KindString, apitour.Required()),
		apitour.Form("age", apitour.KindInt, apitour.Required()),
	}

	uploadFileParams = []apitour.ParameterSpec{
		apitour.File("file", apitour.Required()),
	}

	uploadFilesParams = []apitour.ParameterSpec{
		apitour.Files("files", apitour.Required()),
	}

	passwordParams = []apitour.ParameterSpec{
		apitour.Body("passwords",
			apitour.BodyField("password", apitour.KindString, apitour.Required()),
			apitour.BodyField("password_confirm", apitour.KindString, apitour.Required()),
		),
	}
)

const htmlDocument = `<html>
    <head>
        <title>Some HTML in here</title>
    </head>
    <body>
        <h1>Look ma! HTML!</h1>
    </body>
</html>
`

const textDocument = "Hello world"

const xmlDocument = `<?xml version="1.0"?>
<shampoo>
<Header>
    Apply shampoo here.
</Header>
<Body>
    You'll have to use soap here.
</Body>
</shampoo>
`

func (h *Handler) handleIndex(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"msg": "Olá FastAPI"})
}

func (h *Handler) handleHello(w http.ResponseWriter, _ *http.Request, vals apitour.Values) {
	h.writeJSON(w, http.StatusOK, map[string]string{"hello": vals.String("hello")})
}

func (h *Handler) handleListUsers(w http.ResponseWriter, _ *http.Request, vals apitour.Values) {
	h.writeJSON(w, http.StatusOK, apitour.PageSize{Page: vals.Int("page"), Size: vals.Int("size")})
}

func (h *Handler) handleGetUser(w http.ResponseWriter, _ *http.Request, vals apitour.Values) {
	h.writeJSON(w, http.StatusOK, map[string]int{"id": vals.Int("id")})
}

func (h *Handler) handleLicencePlate(w http.ResponseWriter, _ *http.Request, vals apitour.Values) {
	h.writeJSON(w, http.StatusOK, map[string]string{"licence": vals.String("licence")})
}

func (h *Handler) handleCreateUser(w http.ResponseWriter, _ *http.Request, vals apitour.Values) {
	h.writeJSON(w, http.StatusOK, apitour.UserFromValues(vals.Object("user")))
}

func (h *Handler) handleCreateUserForm(w http.ResponseWriter, _ *http.Request, vals apitour.Values) {
	h.writeJSON(w, http.StatusOK, apitour.UserFromValues(vals))
}

func (h *Handler) handleUploadFile(w http.ResponseWriter, _ *http.Request, vals apitour.Values) {
	h.writeJSON(w, http.StatusOK, vals.File("file").Info())
}

func (h *Handler) handleUploadFiles(w http.ResponseWriter, _ *http.Request, vals apitour.Values) {
	files := vals.Files("files")
	infos := make([]apitour.FileInfo, 0, len(files))
	for _, f := range files {
		infos = append(infos, f.Info())
	}
	h.writeJSON(w, http.StatusOK, infos)
}

func (h *Handler) handlePasswordMatch(w http.ResponseWriter, _ *http.Request, vals apitour.Values) {
	body := vals.Object("passwords")
	if err := apitour.MatchPasswords(body.String("password"), body.String("password_confirm")); err != nil {
		HandleError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"message": "Passwords match."})
}

func (h *Handler) handleHTML(w http.ResponseWriter, _ *http.Request) {
	WriteContent(w, http.StatusOK, "text/html; charset=utf-8", htmlDocument)
}

func (h *Handler) handleText(w http.ResponseWriter, _ *http.Request) {
	WriteContent(w, http.StatusOK, "text/plain; charset=utf-8", textDocument)
}

func (h *Handler) handleXML(w http.ResponseWriter, _ *http.Request) {
	WriteContent(w, http.StatusOK, "application/xml", xmlDocument)
}

func (h *Handler) handleRedirect(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, h.config.RedirectURL, http.StatusMovedPermanently)
}

func (h *Handler) handleCat(w http.ResponseWriter, r *http.Request) {
	if h.static == nil {
		HandleError(w, ErrNoStaticStore)
		return
	}

	file, err := h.static.Get(r.Context(), h.config.CatFile)
	if err != nil {
		HandleError(w, err)
		return
	}
	defer func() {
		if cerr := file.Content.Close(); cerr != nil {
			slog.Warn("failed to close static file", "path", h.config.CatFile, "error", cerr)
		}
	}()

	if file.ETag != "" {
		w.Header().Set("ETag", file.ETag)
	}
	if file.ContentType != "" {
		w.Header().Set("Content-Type", file.ContentType)
	}

	http.ServeContent(w, r, h.config.CatFile, file.ModTime, file.Content)
}

func (h *Handler) handlePagination(w http.ResponseWriter, r *http.Request) {
	page, err := apitour.Pagination(r)
	if err != nil {
		HandleError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, page)
}

func (h *Handler) handleSharedPagination(w http.ResponseWriter, r *http.Request) {
	page, err := h.config.Pagination.Resolve(r)
	if err != nil {
		HandleError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, page)
}

func (h *Handler) handleSkipLimit(w http.ResponseWriter, r *http.Request) {
	page, err := h.config.Pagination.SkipLimit(r)
	if err != nil {
		HandleError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, page)
}

func (h *Handler) handlePageSize(w http.ResponseWriter, r *http.Request) {
	page, err := h.config.Pagination.PageSize(r)
	if err != nil {
		HandleError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, page)
}

func (h *Handler) handleProtected(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"hello": "world"})
}

func (h *Handler) handleNotFound(w http.ResponseWriter, _ *http.Request) {
	WriteError(w, http.StatusNotFound, "not_found", "Not found")
}

func (h *Handler) handleMethodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	WriteError(w, http.StatusMethodNotAllowed, "method_not_allowed", "Method not allowed")
}

func (h *Handler) writeJSON(w http.ResponseWriter, code int, data any) {
	if err := WriteJSON(w, code, data); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
