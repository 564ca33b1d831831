package query

import (
	"errors"
	"testing"
)

func intPtr(n int) *int { return &n }

func TestApplyPagination_PageBased(t *testing.T) {
	b := NewBuilder("users")
	p := &PaginationSpec{Page: 3, PageSize: 10}
	if err := ApplyPagination(b, p, Strict); err != nil {
		t.Fatalf("ApplyPagination() error = %v", err)
	}
	if limit, offset := b.Window(); limit != 10 || offset != 20 {
		t.Errorf("Window() = (%d, %d); want (10, 20)", limit, offset)
	}
}

func TestApplyPagination_OffsetBased(t *testing.T) {
	b := NewBuilder("users")
	p := &PaginationSpec{Offset: intPtr(0), Limit: 25}
	if err := ApplyPagination(b, p, Strict); err != nil {
		t.Fatalf("ApplyPagination() error = %v", err)
	}
	if limit, offset := b.Window(); limit != 25 || offset != 0 {
		t.Errorf("Window() = (%d, %d); want (25, 0)", limit, offset)
	}
}

func TestApplyPagination_PageTakesPrecedence(t *testing.T) {
	b := NewBuilder("users")
	p := &PaginationSpec{Page: 2, PageSize: 5, Offset: intPtr(40), Limit: 100}
	if err := ApplyPagination(b, p, Strict); err != nil {
		t.Fatalf("ApplyPagination() error = %v", err)
	}
	if limit, offset := b.Window(); limit != 5 || offset != 5 {
		t.Errorf("Window() = (%d, %d); want page form to win, (5, 5)", limit, offset)
	}
}

func TestApplyPagination_InvalidPageValues(t *testing.T) {
	cases := []*PaginationSpec{
		{Page: 0, PageSize: 10},
		{Page: 2, PageSize: 0},
		{Page: -1, PageSize: 10},
	}
	for _, p := range cases {
		b := NewBuilder("users")
		if err := ApplyPagination(b, p, Lenient); err != nil {
			t.Fatalf("ApplyPagination(lenient, %+v) error = %v", p, err)
		}
		if limit, offset := b.Window(); limit != -1 || offset != -1 {
			t.Errorf("lenient %+v: Window() = (%d, %d); want unset", p, limit, offset)
		}

		err := ApplyPagination(NewBuilder("users"), p, Strict)
		if !errors.Is(err, ErrInvalidPagination) {
			t.Errorf("strict %+v: error = %v; want ErrInvalidPagination", p, err)
		}
	}
}

func TestApplyPagination_LenientFallsBackToOffsetForm(t *testing.T) {
	b := NewBuilder("users")
	p := &PaginationSpec{Page: -1, PageSize: 10, Offset: intPtr(30), Limit: 10}
	if err := ApplyPagination(b, p, Lenient); err != nil {
		t.Fatalf("ApplyPagination() error = %v", err)
	}
	if limit, offset := b.Window(); limit != 10 || offset != 30 {
		t.Errorf("Window() = (%d, %d); want fallback (10, 30)", limit, offset)
	}
}

func TestApplyPagination_InvalidOffsetForm(t *testing.T) {
	p := &PaginationSpec{Offset: intPtr(-5), Limit: -3}

	b := NewBuilder("users")
	if err := ApplyPagination(b, p, Lenient); err != nil {
		t.Fatalf("ApplyPagination(lenient) error = %v", err)
	}
	if limit, offset := b.Window(); limit != -1 || offset != -1 {
		t.Errorf("Window() = (%d, %d); want unset", limit, offset)
	}

	err := ApplyPagination(NewBuilder("users"), p, Strict)
	if !errors.Is(err, ErrInvalidPagination) {
		t.Errorf("strict error = %v; want ErrInvalidPagination", err)
	}
}

func TestApplyPagination_NilIsNoOp(t *testing.T) {
	b := NewBuilder("users")
	if err := ApplyPagination(b, nil, Strict); err != nil {
		t.Fatalf("ApplyPagination(nil) error = %v", err)
	}
	if limit, offset := b.Window(); limit != -1 || offset != -1 {
		t.Errorf("Window() = (%d, %d); want unset", limit, offset)
	}
}

func TestNewResult_Metadata(t *testing.T) {
	data := make([]Row, 10)
	r := NewResult(data, 25, 10, 10)

	if r.TotalCount != 25 {
		t.Errorf("TotalCount = %d; want 25", r.TotalCount)
	}
	if r.CurrentPage != 2 {
		t.Errorf("CurrentPage = %d; want 2", r.CurrentPage)
	}
	if r.PageSize != 10 {
		t.Errorf("PageSize = %d; want 10", r.PageSize)
	}
	if r.TotalPages != 3 {
		t.Errorf("TotalPages = %d; want 3", r.TotalPages)
	}
	if !r.HasMore {
		t.Error("HasMore = false; want true with 5 rows remaining")
	}
}

func TestNewResult_LastPage(t *testing.T) {
	data := make([]Row, 5)
	r := NewResult(data, 25, 10, 20)

	if r.CurrentPage != 3 {
		t.Errorf("CurrentPage = %d; want 3", r.CurrentPage)
	}
	if r.HasMore {
		t.Error("HasMore = true; want false on the final page")
	}
}

func TestNewResult_NoLimitMeansNoMetadata(t *testing.T) {
	data := make([]Row, 3)
	r := NewResult(data, 3, -1, -1)

	if r.CurrentPage != 0 || r.PageSize != 0 || r.TotalPages != 0 {
		t.Errorf("metadata = (%d, %d, %d); want all zero without a limit",
			r.CurrentPage, r.PageSize, r.TotalPages)
	}
	if r.HasMore {
		t.Error("HasMore = true; want false without a limit")
	}
}

func TestNewResult_NilDataBecomesEmptySlice(t *testing.T) {
	r := NewResult[Row](nil, 0, 10, 0)
	if r.Data == nil {
		t.Fatal("Data = nil; want empty slice so JSON renders [] not null")
	}
	if len(r.Data) != 0 {
		t.Errorf("len(Data) = %d; want 0", len(r.Data))
	}
}

func TestNewResult_NegativeOffsetTreatedAsZero(t *testing.T) {
	data := make([]Row, 5)
	r := NewResult(data, 12, 5, -1)
	if r.CurrentPage != 1 {
		t.Errorf("CurrentPage = %d; want 1", r.CurrentPage)
	}
	if r.TotalPages != 3 {
		t.Errorf("TotalPages = %d; want 3", r.TotalPages)
	}
	if !r.HasMore {
		t.Error("HasMore = false; want true")
	}
}

func TestNewResult_EmptyTable(t *testing.T) {
	r := NewResult([]Row{}, 0, 10, 0)
	if r.TotalPages != 0 {
		t.Errorf("TotalPages = %d; want 0 for an empty table", r.TotalPages)
	}
	if r.HasMore {
		t.Error("HasMore = true; want false")
	}
}
