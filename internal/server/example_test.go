package server

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/alexrttr/qt-table-increment/internal/config"
	"github.com/alexrttr/qt-table-increment/internal/counter"
	"github.com/alexrttr/qt-table-increment/storage/file"
	"go.uber.org/zap"
)

func exampleServer() *Server {
	st := counter.NewStore()
	logger := zap.NewNop().Sugar()
	est := counter.NewEstimator(st, time.Second, logger)
	gw := file.NewGateway("./tmp/example-counters.json")
	return NewServer(st, est, gw, &config.ServerConfig{Logger: logger})
}

func ExampleServer_AddCounterHandler() {
	srv := exampleServer()
	router := srv.Router()

	req := httptest.NewRequest(http.MethodPost, "/counters", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	fmt.Println(w.Code)
	// Output: 201
}

func ExampleServer_ListCountersHandler() {
	srv := exampleServer()
	router := srv.Router()

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/counters", nil))
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/counters", nil))

	fmt.Println(w.Body.String())
	// Output: {"counters":[0,0]}
}
