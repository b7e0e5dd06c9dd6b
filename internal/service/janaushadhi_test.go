package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
)

const productListHTML = `<html><body>
<table id="ContentPlaceHolder1_gvProduct">
<tr><th>Drug Code</th><th>Generic Name</th><th>Unit Size</th><th>MRP</th></tr>
<tr><td>1</td><td>Paracetamol Tablets IP 500 mg</td><td>10's</td><td>Rs. 6.50</td></tr>
<tr><td>2</td><td>Paracetamol Oral Suspension 250mg/5ml</td><td>60 ml</td><td>₹ 11.00</td></tr>
<tr><td>3</td><td>Amoxycillin Capsules IP 500 mg</td><td>10's</td><td>35.10</td></tr>
<tr><td>4</td><td>Broken Price Row</td><td>1</td><td>N/A</td></tr>
</table>
</body></html>`

func TestCatalogSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ProductList.aspx" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(productListHTML))
	}))
	defer srv.Close()

	svc := NewCatalogService(srv.URL)

	meds, err := svc.Search(context.Background(), "paracetamol")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(meds) != 2 {
		t.Fatalf("want 2 matches, got %d: %+v", len(meds), meds)
	}
	if meds[0].Name != "Paracetamol Tablets IP 500 mg" {
		t.Fatalf("unexpected first match %q", meds[0].Name)
	}
	if !meds[0].MRP.Equal(decimal.RequireFromString("6.50")) {
		t.Fatalf("unexpected MRP %s", meds[0].MRP)
	}
	if !meds[1].MRP.Equal(decimal.RequireFromString("11.00")) {
		t.Fatalf("rupee-symbol price not normalized: %s", meds[1].MRP)
	}
}

func TestCatalogSearchSkipsUnparsablePrices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(productListHTML))
	}))
	defer srv.Close()

	svc := NewCatalogService(srv.URL)

	meds, err := svc.Search(context.Background(), "broken")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(meds) != 0 {
		t.Fatalf("rows without a parsable MRP must be skipped, got %+v", meds)
	}
}

func TestCatalogSearchServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	svc := NewCatalogService(srv.URL)
	if _, err := svc.Search(context.Background(), "paracetamol"); err == nil {
		t.Fatal("want error on non-2xx status")
	}
}
