package einvoice

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClientSubmitXML(t *testing.T) {
	var gotPath, gotContentType string
	var gotAuth bool

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")
		user, pass, ok := r.BasicAuth()
		gotAuth = ok && user == "istasyon" && pass == "gizli"
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"message":"Fatura alındı","status":"ACCEPTED"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "istasyon", "gizli")
	result, err := client.SubmitXML(context.Background(), "<Invoice></Invoice>")
	if err != nil {
		t.Fatalf("SubmitXML hata verdi: %v", err)
	}

	if gotPath != "/einvoice/send" {
		t.Errorf("path = %s, beklenen /einvoice/send", gotPath)
	}
	if gotContentType != "application/xml" {
		t.Errorf("content-type = %s, beklenen application/xml", gotContentType)
	}
	if !gotAuth {
		t.Error("basic auth bilgileri gönderilmedi")
	}
	if !result.Success || result.Status != "ACCEPTED" {
		t.Errorf("beklenmeyen cevap: %+v", result)
	}
}

func TestClientSubmitJSONRed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/earchive/send" {
			t.Errorf("path = %s, beklenen /earchive/send", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":false,"message":"Vergi numarası geçersiz","status":"REJECTED"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "istasyon", "gizli")
	result, err := client.SubmitJSON(context.Background(), []byte(`{"ettn":"x"}`))
	if err != nil {
		t.Fatalf("SubmitJSON hata verdi: %v", err)
	}

	// Ret cevabı hata değildir, olduğu gibi döner
	if result.Success {
		t.Error("success = true, beklenen false")
	}
	if result.Status != "REJECTED" {
		t.Errorf("status = %s, beklenen REJECTED", result.Status)
	}
	if result.Message != "Vergi numarası geçersiz" {
		t.Errorf("message = %s", result.Message)
	}
}

func TestClientSunucuyaUlasamama(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", "u", "p")
	if _, err := client.SubmitXML(context.Background(), "<Invoice/>"); err == nil {
		t.Fatal("ulaşılamayan sunucu için hata bekleniyordu")
	}
}

func TestClientGecersizCevap(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("bu json değil"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "u", "p")
	if _, err := client.SubmitXML(context.Background(), "<Invoice/>"); err == nil {
		t.Fatal("çözümlenemeyen cevap için hata bekleniyordu")
	}
}
