package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/brequin/brequin/soc/catalog"
)

func testRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	c := catalog.New()
	course := c.AddDepartment("CSE").AddCourse("CSE 101")
	rated := &catalog.Section{SectionType: "LE", Professor: "Smith, Jane"}
	rated.SetRating(&catalog.Rating{Rating: 4.2, ProfessorID: "p1"})
	course.Sections = []*catalog.Section{rated}
	c.AddDepartment("MATH").AddCourse("MATH 18")
	return NewRouter(c, nil)
}

func get(t *testing.T, router *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestListCatalog(t *testing.T) {
	rec := get(t, testRouter(), "/api/courses")
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusOK)
	}
	body := rec.Body.String()
	if !strings.HasPrefix(body, `{"CSE":{"CSE 101":[`) || !strings.Contains(body, `"MATH":{"MATH 18":[]}`) {
		t.Fatalf("unexpected body %s", body)
	}
}

func TestListDepartments(t *testing.T) {
	rec := get(t, testRouter(), "/api/departments")
	var codes []string
	if err := json.Unmarshal(rec.Body.Bytes(), &codes); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(codes) != 2 || codes[0] != "CSE" || codes[1] != "MATH" {
		t.Fatalf("unexpected departments %q", codes)
	}
}

func TestGetDepartment(t *testing.T) {
	rec := get(t, testRouter(), "/api/courses/cse")
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusOK)
	}
	if !strings.HasPrefix(rec.Body.String(), `{"CSE 101":[`) {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}

	if rec := get(t, testRouter(), "/api/courses/PHYS"); rec.Code != http.StatusNotFound {
		t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusNotFound)
	}
}

func TestGetCourse(t *testing.T) {
	rec := get(t, testRouter(), "/api/courses/CSE/CSE%20101")
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusOK)
	}
	var sections []struct {
		Professor string          `json:"professor"`
		Rating    *catalog.Rating `json:"professor_rating"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &sections); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(sections) != 1 || sections[0].Rating == nil || sections[0].Rating.Rating != 4.2 {
		t.Fatalf("unexpected sections %+v", sections)
	}

	if rec := get(t, testRouter(), "/api/courses/MATH/MATH%2018"); rec.Body.String() != "[]" {
		t.Fatalf("expected empty list for course without sections, got %s", rec.Body.String())
	}
	if rec := get(t, testRouter(), "/api/courses/CSE/CSE%20999"); rec.Code != http.StatusNotFound {
		t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusNotFound)
	}
}
