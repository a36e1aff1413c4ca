// Package dashboard is the service shell: it hosts the collaborator APIs the
// checkout core consumes (theme persistence, order catalog, asset upload,
// payment initiation, postal lookup proxy) and the preview session control,
// over one chi router plus an MCP tool surface.
package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/hazyhaar/vitrine/idgen"
	"github.com/hazyhaar/vitrine/layout"
	"github.com/hazyhaar/vitrine/order"
	"github.com/hazyhaar/vitrine/orderdata"
	"github.com/hazyhaar/vitrine/postal"
	"github.com/hazyhaar/vitrine/preview"
	"github.com/hazyhaar/vitrine/theme"
	"github.com/hazyhaar/vitrine/themestore"
)

// assetSlots are the accepted upload targets, mapping to ThemeConfig.Images.
var assetSlots = map[string]bool{
	"logo":          true,
	"favicon":       true,
	"bannerMobile":  true,
	"bannerDesktop": true,
}

// Deps are the collaborators the service fronts.
type Deps struct {
	Themes   *themestore.Store
	Catalog  *orderdata.Store
	Postal   *postal.Client
	Surface  *preview.Surface
	Payments order.PaymentInitiator
	Logger   *slog.Logger
}

// Service is the HTTP + MCP surface.
type Service struct {
	cfg      Config
	themes   *themestore.Store
	catalog  *orderdata.Store
	postal   *postal.Client
	surface  *preview.Surface
	payments order.PaymentInitiator
	assetIDs idgen.Generator
	logger   *slog.Logger

	mu       sync.Mutex
	lastBody string
	open     bool
}

// New creates the service.
func New(cfg Config, deps Deps) *Service {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		cfg:      cfg,
		themes:   deps.Themes,
		catalog:  deps.Catalog,
		postal:   deps.Postal,
		surface:  deps.Surface,
		payments: deps.Payments,
		assetIDs: idgen.Prefixed("ast_", idgen.NanoID(12)),
		logger:   logger,
	}
}

// RegisterHTTP registers the service endpoints on the router.
func (s *Service) RegisterHTTP(r chi.Router) {
	r.Get("/health", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/theme", s.handleThemeGet)
		r.Put("/theme", s.handleThemePut)
		r.Get("/order/catalog", s.handleCatalog)
		r.Post("/assets/{slot}", s.handleAssetUpload)
		r.Post("/checkout/payment", s.handlePayment)
		r.Get("/postal/{code}", s.handlePostal)
		r.Post("/preview/open", s.handlePreviewOpen)
		r.Post("/preview/close", s.handlePreviewClose)
		r.Get("/preview/state", s.handlePreviewState)
		r.Get("/preview/frame", s.handlePreviewFrame)
	})

	assetsDir := filepath.Join(s.cfg.DataDir, "assets")
	r.Handle("/assets/*", http.StripPrefix("/assets/", http.FileServer(http.Dir(assetsDir))))
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.respond(w, http.StatusOK, map[string]string{"status": "ok"})
}

// --- Theme persistence ---

func (s *Service) handleThemeGet(w http.ResponseWriter, r *http.Request) {
	rec, err := s.themes.Get(r.Context(), s.cfg.CheckoutID)
	if err != nil {
		s.fail(w, http.StatusInternalServerError, err)
		return
	}
	// Always the full normalized form: a never-saved checkout reads as the
	// complete default theme.
	s.respond(w, http.StatusOK, theme.Load(rec).Record())
}

func (s *Service) handleThemePut(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		s.fail(w, http.StatusBadRequest, fmt.Errorf("read body: %w", err))
		return
	}
	partial := theme.DecodeRecord(body)

	full, err := s.themes.Merge(r.Context(), s.cfg.CheckoutID, partial)
	if err != nil {
		s.fail(w, http.StatusInternalServerError, err)
		return
	}

	// The preview tracks the stored theme; re-render is best-effort.
	if err := s.refreshPreview(r.Context()); err != nil {
		s.logger.Warn("dashboard: preview refresh after theme update", "error", err)
	}

	s.respond(w, http.StatusOK, full)
}

// --- Order data ---

func (s *Service) handleCatalog(w http.ResponseWriter, r *http.Request) {
	cat, err := s.catalog.Catalog(r.Context())
	if err != nil {
		s.fail(w, http.StatusInternalServerError, err)
		return
	}
	s.respond(w, http.StatusOK, cat)
}

// --- Assets ---

func (s *Service) handleAssetUpload(w http.ResponseWriter, r *http.Request) {
	slot := chi.URLParam(r, "slot")
	if !assetSlots[slot] {
		s.fail(w, http.StatusNotFound, fmt.Errorf("unknown asset slot %q", slot))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.fail(w, http.StatusBadRequest, fmt.Errorf("multipart file: %w", err))
		return
	}
	defer file.Close()

	ext := filepath.Ext(header.Filename)
	if mt := mime.TypeByExtension(ext); !strings.HasPrefix(mt, "image/") {
		s.fail(w, http.StatusUnsupportedMediaType, fmt.Errorf("not an image: %q", header.Filename))
		return
	}

	name := fmt.Sprintf("%s_%s%s", slot, s.assetIDs(), ext)
	dir := filepath.Join(s.cfg.DataDir, "assets")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		s.fail(w, http.StatusInternalServerError, fmt.Errorf("assets dir: %w", err))
		return
	}

	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		s.fail(w, http.StatusInternalServerError, fmt.Errorf("store asset: %w", err))
		return
	}
	defer dst.Close()
	if _, err := io.Copy(dst, io.LimitReader(file, 8<<20)); err != nil {
		s.fail(w, http.StatusInternalServerError, fmt.Errorf("store asset: %w", err))
		return
	}

	s.logger.Info("dashboard: asset stored", "slot", slot, "name", name)
	s.respond(w, http.StatusCreated, map[string]string{"slot": slot, "url": "/assets/" + name})
}

// --- Payment ---

func (s *Service) handlePayment(w http.ResponseWriter, r *http.Request) {
	var snap order.Snapshot
	if err := json.NewDecoder(r.Body).Decode(&snap); err != nil {
		s.fail(w, http.StatusBadRequest, fmt.Errorf("decode snapshot: %w", err))
		return
	}
	if snap.TotalCents == 0 {
		snap.TotalCents = order.Progression{Cart: snap.Cart}.TotalCents()
	}

	artifact, err := s.payments.Initiate(r.Context(), snap)
	if err != nil {
		s.fail(w, http.StatusUnprocessableEntity, err)
		return
	}
	s.respond(w, http.StatusCreated, artifact)
}

// --- Postal proxy ---

func (s *Service) handlePostal(w http.ResponseWriter, r *http.Request) {
	code := order.NormalizePostalCode(chi.URLParam(r, "code"))
	if code == "" {
		s.fail(w, http.StatusBadRequest, fmt.Errorf("malformed postal code"))
		return
	}

	res, found, err := s.postal.Lookup(r.Context(), code)
	if err != nil {
		s.fail(w, http.StatusBadGateway, err)
		return
	}
	if !found {
		s.respond(w, http.StatusNotFound, map[string]any{"found": false})
		return
	}
	s.respond(w, http.StatusOK, map[string]any{"found": true, "address": res})
}

// --- Preview session ---

func (s *Service) handlePreviewOpen(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Mode string `json:"mode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.fail(w, http.StatusBadRequest, fmt.Errorf("decode request: %w", err))
		return
	}

	// Open tears down any existing surface first; a viewport switch is
	// exactly close + open.
	if err := s.surface.Open(r.Context(), preview.Mode(req.Mode)); err != nil {
		s.fail(w, http.StatusInternalServerError, err)
		return
	}
	s.mu.Lock()
	s.open = true
	s.mu.Unlock()

	if err := s.refreshPreview(r.Context()); err != nil {
		s.logger.Warn("dashboard: initial preview render", "error", err)
	}
	s.writeState(w)
}

func (s *Service) handlePreviewClose(w http.ResponseWriter, _ *http.Request) {
	s.surface.Close()
	s.mu.Lock()
	s.open = false
	s.lastBody = ""
	s.mu.Unlock()
	s.writeState(w)
}

func (s *Service) handlePreviewState(w http.ResponseWriter, _ *http.Request) {
	s.writeState(w)
}

func (s *Service) writeState(w http.ResponseWriter) {
	s.respond(w, http.StatusOK, s.state())
}

// placeholderHTML is what the hosting frame shows before the mount point
// exists.
const placeholderHTML = `<!DOCTYPE html>
<html><head><style>
html, body { margin: 0; height: 100%; display: grid; place-items: center; font-family: system-ui, sans-serif; color: #6b7280; }
</style></head>
<body><p>Carregando pré-visualização…</p></body></html>`

func (s *Service) handlePreviewFrame(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	if !s.surface.Ready() {
		io.WriteString(w, placeholderHTML)
		return
	}
	s.mu.Lock()
	body := s.lastBody
	s.mu.Unlock()
	fmt.Fprintf(w, "<!DOCTYPE html>\n<html><head></head><body>%s</body></html>", body)
}

// refreshPreview re-renders the checkout from the stored theme and the
// catalog and mounts it into the surface. No-op while no session is open.
func (s *Service) refreshPreview(ctx context.Context) error {
	s.mu.Lock()
	open := s.open
	s.mu.Unlock()
	if !open {
		return nil
	}

	rec, err := s.themes.Get(ctx, s.cfg.CheckoutID)
	if err != nil {
		return err
	}
	cat, err := s.catalog.Catalog(ctx)
	if err != nil {
		return err
	}

	body, err := layout.Render(theme.Load(rec), order.New(cat.Product))
	if err != nil {
		return err
	}
	if err := s.surface.Mount(ctx, body); err != nil {
		return err
	}

	s.mu.Lock()
	s.lastBody = body
	s.mu.Unlock()
	return nil
}

// --- Helpers ---

func (s *Service) respond(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("dashboard: encode response", "error", err)
	}
}

func (s *Service) fail(w http.ResponseWriter, status int, err error) {
	s.logger.Warn("dashboard: request failed", "status", status, "error", err)
	s.respond(w, status, map[string]string{"error": err.Error()})
}
