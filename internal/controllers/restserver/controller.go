package restserver

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/chrissnell/climate/internal/climate"
	"github.com/chrissnell/climate/pkg/config"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Controller represents the REST server controller
type Controller struct {
	restConfig config.RESTServerData
	Server     http.Server
	Climate    *climate.Climate
	logger     *zap.SugaredLogger
	handlers   *Handlers
}

// NewController creates a new REST server controller serving a reduced climate
func NewController(c *climate.Climate, rc config.RESTServerData, logger *zap.SugaredLogger) (*Controller, error) {
	if c == nil {
		return nil, fmt.Errorf("no climate to serve")
	}

	// If a listen address was not provided, listen on all interfaces
	if rc.ListenAddr == "" {
		logger.Info("rest.listen-addr not provided; defaulting to 0.0.0.0 (all interfaces)")
		rc.ListenAddr = "0.0.0.0"
	}

	if rc.Port == 0 {
		logger.Info("rest.port not provided; defaulting to 8080")
		rc.Port = 8080
	}

	ctrl := &Controller{
		restConfig: rc,
		Climate:    c,
		logger:     logger,
	}

	ctrl.handlers = NewHandlers(ctrl)

	ctrl.Server.Addr = fmt.Sprintf("%v:%v", rc.ListenAddr, rc.Port)
	ctrl.Server.Handler = ctrl.setupRouter()
	ctrl.Server.ReadHeaderTimeout = 10 * time.Second

	return ctrl, nil
}

// StartController starts the REST server and shuts it down when ctx is done
func (c *Controller) StartController(ctx context.Context, wg *sync.WaitGroup) error {
	c.logger.Infow("starting REST server", "addr", c.Server.Addr, "run_id", c.Climate.RunID)
	wg.Add(1)

	go func() {
		defer wg.Done()

		if c.restConfig.Cert != "" && c.restConfig.Key != "" {
			if err := c.Server.ListenAndServeTLS(c.restConfig.Cert, c.restConfig.Key); err != http.ErrServerClosed {
				c.logger.Errorf("REST server error: %v", err)
			}
		} else {
			if err := c.Server.ListenAndServe(); err != http.ErrServerClosed {
				c.logger.Errorf("REST server error: %v", err)
			}
		}
	}()

	go func() {
		<-ctx.Done()
		c.logger.Info("shutting down the REST server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		c.Server.Shutdown(shutdownCtx)
	}()

	return nil
}

// setupRouter configures the HTTP router with all endpoints
func (c *Controller) setupRouter() *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/climate", c.handlers.GetClimate).Methods(http.MethodGet)
	router.HandleFunc("/climate/days", c.handlers.GetDays).Methods(http.MethodGet)
	router.HandleFunc("/climate/days/{month:[0-9]{1,2}}/{day:[0-9]{1,2}}", c.handlers.GetDay).Methods(http.MethodGet)
	router.HandleFunc("/climate/years", c.handlers.GetYears).Methods(http.MethodGet)
	router.HandleFunc("/climate/years/{year:[0-9]+}", c.handlers.GetYear).Methods(http.MethodGet)

	return router
}
