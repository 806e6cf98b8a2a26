package handler

import (
	"net/http"
	"testing"

	"github.com/thorntonmirandajane/beast-inventory-system-sub001/internal/mfg/repository"
	"github.com/thorntonmirandajane/beast-inventory-system-sub001/internal/mfg/service"
	"github.com/thorntonmirandajane/beast-inventory-system-sub001/internal/mfg/testutil"
	"go.uber.org/zap"
)

func setupCatalogTest(t *testing.T) *testutil.TestEnv {
	t.Helper()
	db := testutil.SetupTestDB(t)
	router := testutil.SetupRouter()

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, testutil.NewTestRedis(), testutil.TestConfig(), zap.NewNop())
	h := NewCatalogHandler(services.Catalog)

	api := testutil.AuthGroup(router, "/api/v1")
	api.GET("/skus", h.List)
	api.GET("/skus/:id", h.Get)
	api.POST("/skus", h.Create)
	api.PUT("/skus/:id", h.Update)
	api.GET("/skus/:id/components", h.Components)
	api.PUT("/skus/:id/components", h.ReplaceComponents)
	api.GET("/skus/:id/used-in", h.UsedIn)

	return &testutil.TestEnv{DB: db, Router: router, T: t}
}

func TestCatalogCreateAndGet(t *testing.T) {
	env := setupCatalogTest(t)
	token := testutil.PlannerTestToken()

	w := testutil.DoRequest(env.Router, "POST", "/api/v1/skus", map[string]interface{}{
		"code":    "PACK-100",
		"name":    "Boxed Unit 100",
		"kind":    "completed",
		"process": "PACKING",
	}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	id := data["id"].(string)
	if data["code"] != "PACK-100" {
		t.Errorf("Expected code PACK-100, got %v", data["code"])
	}
	if data["active"] != true {
		t.Errorf("Expected new SKU to be active")
	}

	w2 := testutil.DoRequest(env.Router, "GET", "/api/v1/skus/"+id, nil, token)
	if w2.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w2.Code, w2.Body.String())
	}

	// Duplicate code rejected
	w3 := testutil.DoRequest(env.Router, "POST", "/api/v1/skus", map[string]interface{}{
		"code": "PACK-100",
		"name": "Duplicate",
		"kind": "completed",
	}, token)
	if w3.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for duplicate code, got %d", w3.Code)
	}

	// Unknown kind rejected
	w4 := testutil.DoRequest(env.Router, "POST", "/api/v1/skus", map[string]interface{}{
		"code": "XX-1",
		"name": "Bad Kind",
		"kind": "widget",
	}, token)
	if w4.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for unknown kind, got %d", w4.Code)
	}
}

func TestCatalogReplaceComponents(t *testing.T) {
	env := setupCatalogTest(t)
	token := testutil.PlannerTestToken()

	parent := testutil.SeedSKU(t, env.DB, "sku-parent", "PACK-A", "completed", "PACKING")
	comp := testutil.SeedSKU(t, env.DB, "sku-comp", "ASM-B", "assembly", "ASSEMBLY")
	raw := testutil.SeedSKU(t, env.DB, "sku-raw", "RAW-C", "raw", "")

	w := testutil.DoRequest(env.Router, "PUT", "/api/v1/skus/"+parent.ID+"/components", map[string]interface{}{
		"components": []map[string]interface{}{
			{"component_sku_id": comp.ID, "qty_per_unit": 1},
			{"component_sku_id": raw.ID, "qty_per_unit": 4},
		},
	}, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	items := resp["data"].(map[string]interface{})["items"].([]interface{})
	if len(items) != 2 {
		t.Fatalf("Expected 2 edges, got %d", len(items))
	}

	// Self reference rejected
	w2 := testutil.DoRequest(env.Router, "PUT", "/api/v1/skus/"+parent.ID+"/components", map[string]interface{}{
		"components": []map[string]interface{}{
			{"component_sku_id": parent.ID, "qty_per_unit": 1},
		},
	}, token)
	if w2.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for self reference, got %d", w2.Code)
	}

	// Raw materials cannot own components
	w3 := testutil.DoRequest(env.Router, "PUT", "/api/v1/skus/"+raw.ID+"/components", map[string]interface{}{
		"components": []map[string]interface{}{
			{"component_sku_id": comp.ID, "qty_per_unit": 1},
		},
	}, token)
	if w3.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for raw parent, got %d", w3.Code)
	}

	// Non-positive quantity rejected, existing edges untouched
	w4 := testutil.DoRequest(env.Router, "PUT", "/api/v1/skus/"+parent.ID+"/components", map[string]interface{}{
		"components": []map[string]interface{}{
			{"component_sku_id": raw.ID, "qty_per_unit": -2},
		},
	}, token)
	if w4.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for negative qty, got %d", w4.Code)
	}
	w5 := testutil.DoRequest(env.Router, "GET", "/api/v1/skus/"+parent.ID+"/components", nil, token)
	resp5 := testutil.ParseResponse(w5)
	items5 := resp5["data"].(map[string]interface{})["items"].([]interface{})
	if len(items5) != 2 {
		t.Errorf("Expected edges to survive failed replace, got %d", len(items5))
	}
}

func TestCatalogUsedIn(t *testing.T) {
	env := setupCatalogTest(t)
	token := testutil.PlannerTestToken()

	packA := testutil.SeedSKU(t, env.DB, "sku-pa", "PACK-A", "completed", "PACKING")
	packB := testutil.SeedSKU(t, env.DB, "sku-pb", "PACK-B", "completed", "PACKING")
	asm := testutil.SeedSKU(t, env.DB, "sku-asm", "ASM-X", "assembly", "ASSEMBLY")
	raw := testutil.SeedSKU(t, env.DB, "sku-raw", "RAW-Y", "raw", "")

	testutil.SeedEdge(t, env.DB, "e1", packA.ID, asm.ID, 1)
	testutil.SeedEdge(t, env.DB, "e2", packB.ID, asm.ID, 2)
	testutil.SeedEdge(t, env.DB, "e3", asm.ID, raw.ID, 3)

	w := testutil.DoRequest(env.Router, "GET", "/api/v1/skus/"+raw.ID+"/used-in", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	if data["truncated"] != false {
		t.Errorf("Expected truncated=false, got %v", data["truncated"])
	}
	items := data["items"].([]interface{})
	if len(items) != 3 {
		t.Fatalf("Expected 3 usage refs, got %d", len(items))
	}

	// Direct parent first, then the products that consume the assembly.
	first := items[0].(map[string]interface{})
	if first["code"] != "ASM-X" || first["depth"] != float64(0) {
		t.Errorf("Expected ASM-X at depth 0 first, got %v depth %v", first["code"], first["depth"])
	}
	second := items[1].(map[string]interface{})
	if second["code"] != "PACK-A" || second["depth"] != float64(1) {
		t.Errorf("Expected PACK-A at depth 1, got %v depth %v", second["code"], second["depth"])
	}

	// Unknown SKU is a 404
	w2 := testutil.DoRequest(env.Router, "GET", "/api/v1/skus/no-such/used-in", nil, token)
	if w2.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", w2.Code)
	}
}
