package projections

import (
	"context"
	"testing"

	"flotenn/internal/domain/faq"
	"flotenn/internal/domain/gallery"
	"flotenn/internal/domain/post"
	"flotenn/internal/domain/setting"
)

func TestQueryGetGallery(t *testing.T) {
	store := &mockList[gallery.Image]{items: []gallery.Image{
		{ID: "g1", Category: "PPF"}, {ID: "g2", Category: "Wraps"}, {ID: "g3", Category: "PPF"},
	}}
	res := QueryGetGallery(context.Background(), store)
	if len(res.Images) != 3 {
		t.Errorf("images = %d", len(res.Images))
	}
	if len(res.Categories) != 2 || res.Categories[0] != "PPF" {
		t.Errorf("categories = %v", res.Categories)
	}

	empty := QueryGetGallery(context.Background(), &mockList[gallery.Image]{err: errStore})
	if len(empty.Images) != 0 || len(empty.Categories) != 0 {
		t.Errorf("failure should render the empty state, got %+v", empty)
	}
}

func TestQueryGetFAQs(t *testing.T) {
	store := &mockList[faq.FAQ]{items: []faq.FAQ{
		{ID: "1", Category: "PPF"}, {ID: "2"}, {ID: "3", Category: "PPF"},
	}}
	groups := QueryGetFAQs(context.Background(), store)
	if len(groups) != 2 || groups[0].Category != "PPF" || len(groups[0].Items) != 2 || groups[1].Category != faq.DefaultCategory {
		t.Errorf("groups = %+v", groups)
	}
	if got := QueryGetFAQs(context.Background(), &mockList[faq.FAQ]{err: errStore}); got != nil {
		t.Errorf("failure = %+v, want nil", got)
	}
}

func TestQueryGetRelatedPosts(t *testing.T) {
	store := &mockList[post.Post]{items: []post.Post{{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"}}}
	got := QueryGetRelatedPosts(context.Background(), store, "b", 2)
	if len(got) != 2 || got[0].ID != "a" || got[1].ID != "c" {
		t.Errorf("related = %+v", got)
	}
}

func TestQueryGetSettings(t *testing.T) {
	s := QueryGetSettings(context.Background(), &mockSettings{values: map[string]string{setting.KeySiteTitle: "Custom"}})
	if s.Get(setting.KeySiteTitle) != "Custom" {
		t.Errorf("title = %q", s.Get(setting.KeySiteTitle))
	}
	if s.Get(setting.KeyRobotsTxt) != setting.Defaults[setting.KeyRobotsTxt] {
		t.Error("unsaved key did not fall back to its default")
	}

	failed := QueryGetSettings(context.Background(), &mockSettings{err: errStore})
	if failed.Get(setting.KeySiteTitle) != setting.Defaults[setting.KeySiteTitle] {
		t.Error("load failure should yield defaults")
	}
}
