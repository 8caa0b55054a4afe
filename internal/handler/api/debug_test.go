// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/png"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/studio-go/internal/store"
)

func TestDebugImages(t *testing.T) {
	a := newTestAPI(t, withSession)
	ctx := context.Background()

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 40, 30))))
	require.NoError(t, a.bucket.Put(ctx, "hero/present.png", &buf))

	_, err := a.stores.Hero.Create(ctx, store.CreateHeroSlideParams{
		Title: "Present", Image: a.bucket.PublicURL("hero/present.png"),
	})
	require.NoError(t, err)
	_, err = a.stores.Team.Create(ctx, store.CreateTeamMemberParams{
		Name: "Gone", Position: "P", Image: a.bucket.PublicURL("team/gone.jpg"),
	})
	require.NoError(t, err)
	_, err = a.stores.Works.Create(ctx, store.CreateWorkParams{
		Title: "External", Slug: "external", Image: "https://cdn.example.com/w.jpg",
	})
	require.NoError(t, err)

	rec := a.do(t, http.MethodGet, "/debug/images", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var got struct {
		Data    []ImageReport `json:"data"`
		Total   int           `json:"total"`
		Missing int           `json:"missing"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, 3, got.Total)
	assert.Equal(t, 1, got.Missing)

	bySource := map[string]ImageReport{}
	for _, r := range got.Data {
		bySource[r.Source] = r
	}

	hero := bySource["hero"]
	require.NotNil(t, hero.Exists)
	assert.True(t, *hero.Exists)
	assert.Equal(t, "png", hero.Format)
	assert.Equal(t, 40, hero.Width)
	assert.Equal(t, 30, hero.Height)

	team := bySource["team"]
	require.NotNil(t, team.Exists)
	assert.False(t, *team.Exists)

	works := bySource["works"]
	assert.Nil(t, works.Exists)
	assert.Empty(t, works.Key)
}

func TestDebugImagesRequiresSession(t *testing.T) {
	a := newTestAPI(t)
	assert.Equal(t, http.StatusUnauthorized, a.do(t, http.MethodGet, "/debug/images", nil).Code)
}
