// Copyright 2026 gamerec Project Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package server

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/emicklei/go-restful/v3"
	"github.com/steinfletcher/apitest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/gamerec/gamerec/artifact"
	"github.com/gamerec/gamerec/config"
	"github.com/gamerec/gamerec/logics"
)

type ServerTestSuite struct {
	suite.Suite
	RestServer
	handler *restful.Container
}

func (suite *ServerTestSuite) SetupSuite() {
	// "alice" owns item a; "bob" owns nothing. The similarity matrix is the
	// identity and the popularities are powers of two so every combined
	// score is exact in binary.
	store, err := artifact.NewStore(map[string]any{
		artifact.KeySimilarityMatrices: map[string]any{
			"combined": [][]float32{
				{1, 0, 0, 0, 0},
				{0, 1, 0, 0, 0},
				{0, 0, 1, 0, 0},
				{0, 0, 0, 1, 0},
				{0, 0, 0, 0, 1},
			},
		},
		artifact.KeyItemIndex:  []string{"10", "20", "30", "40", "50"},
		artifact.KeyPopularity: []float32{0.5, 0.25, 0.125, 0.0625, 0.03125},
		artifact.KeyInteractions: map[string][]string{
			"alice": {"10"},
			"bob":   {},
		},
		artifact.KeyBundles: map[string][]string{
			"pair": {"10", "20"},
			"quad": {"10", "20", "30", "40"},
		},
		artifact.KeyBundleSimilarity: [][]float32{
			{1, 0.5},
			{0.5, 1},
		},
	})
	suite.NoError(err)

	cfg := config.GetDefaultConfig()
	cfg.Recommend.Alpha = 0.5
	server, err := NewRestServer(cfg, store)
	suite.NoError(err)
	suite.RestServer = *server

	suite.CreateWebService()
	suite.handler = restful.NewContainer()
	suite.handler.Add(suite.WebService)
}

func marshal(t *testing.T, v interface{}) string {
	s, err := json.Marshal(v)
	assert.NoError(t, err)
	return string(s)
}

func (suite *ServerTestSuite) TestRecommendNext() {
	// identity similarity for the owned item contributes nothing to the
	// other items, so the warm ranking follows popularity with item 10
	// excluded
	apitest.New().
		Handler(suite.handler).
		Get("/api/recommend/next/alice").
		Expect(suite.T()).
		Status(http.StatusOK).
		Body(marshal(suite.T(), []ItemScore{
			{ItemId: "20", Score: 0.125, ImageURL: ImageURL("20")},
			{ItemId: "30", Score: 0.0625, ImageURL: ImageURL("30")},
			{ItemId: "40", Score: 0.03125, ImageURL: ImageURL("40")},
			{ItemId: "50", Score: 0.015625, ImageURL: ImageURL("50")},
		})).
		End()
}

func (suite *ServerTestSuite) TestRecommendNextKeepOwned() {
	apitest.New().
		Handler(suite.handler).
		Get("/api/recommend/next/alice").
		Query("exclude-owned", "false").
		Query("n", "1").
		Expect(suite.T()).
		Status(http.StatusOK).
		Body(marshal(suite.T(), []ItemScore{
			{ItemId: "10", Score: 0.75, ImageURL: ImageURL("10")},
		})).
		End()
}

func (suite *ServerTestSuite) TestRecommendNextColdStart() {
	apitest.New().
		Handler(suite.handler).
		Get("/api/recommend/next/bob").
		Query("n", "2").
		Expect(suite.T()).
		Status(http.StatusOK).
		Body(marshal(suite.T(), []ItemScore{
			{ItemId: "10", Score: 0.5, ImageURL: ImageURL("10")},
			{ItemId: "20", Score: 0.25, ImageURL: ImageURL("20")},
		})).
		End()
}

func (suite *ServerTestSuite) TestRecommendNextUserNotFound() {
	apitest.New().
		Handler(suite.handler).
		Get("/api/recommend/next/carol").
		Expect(suite.T()).
		Status(http.StatusNotFound).
		End()
}

func (suite *ServerTestSuite) TestRecommendNextBadParameter() {
	apitest.New().
		Handler(suite.handler).
		Get("/api/recommend/next/alice").
		Query("n", "ten").
		Expect(suite.T()).
		Status(http.StatusBadRequest).
		End()
	apitest.New().
		Handler(suite.handler).
		Get("/api/recommend/next/alice").
		Query("exclude-owned", "maybe").
		Expect(suite.T()).
		Status(http.StatusBadRequest).
		End()
}

func (suite *ServerTestSuite) TestRecommendBundles() {
	// "pair" is half owned and passes the default threshold; "quad" at 1/4
	// does not
	apitest.New().
		Handler(suite.handler).
		Get("/api/recommend/bundles/alice").
		Expect(suite.T()).
		Status(http.StatusOK).
		Body(marshal(suite.T(), []ItemScore{
			{ItemId: "20", Score: 0.5, ImageURL: ImageURL("20")},
		})).
		End()
}

func (suite *ServerTestSuite) TestRecommendBundlesLowerThreshold() {
	apitest.New().
		Handler(suite.handler).
		Get("/api/recommend/bundles/alice").
		Query("min-ownership", "0.2").
		Expect(suite.T()).
		Status(http.StatusOK).
		Body(marshal(suite.T(), []ItemScore{
			{ItemId: "20", Score: 0.5, ImageURL: ImageURL("20")},
			{ItemId: "30", Score: 0.25, ImageURL: ImageURL("30")},
			{ItemId: "40", Score: 0.25, ImageURL: ImageURL("40")},
		})).
		End()
}

func (suite *ServerTestSuite) TestUserBundles() {
	pair, _ := suite.Store.Bundles.Id("pair")
	quad, _ := suite.Store.Bundles.Id("quad")
	b, _ := suite.Store.Items.Id("20")
	c, _ := suite.Store.Items.Id("30")
	d, _ := suite.Store.Items.Id("40")
	apitest.New().
		Handler(suite.handler).
		Get("/api/user/alice/bundles").
		Expect(suite.T()).
		Status(http.StatusOK).
		Body(marshal(suite.T(), []logics.PartialBundle{
			{
				BundleIndex:    pair,
				BundleId:       "pair",
				OwnershipRatio: 0.5,
				OwnedCount:     1,
				MissingIds:     []string{"20"},
				MissingIndices: []int32{b},
			},
			{
				BundleIndex:    quad,
				BundleId:       "quad",
				OwnershipRatio: 0.25,
				OwnedCount:     1,
				MissingIds:     []string{"20", "30", "40"},
				MissingIndices: []int32{b, c, d},
			},
		})).
		End()
}

func (suite *ServerTestSuite) TestUserBundlesEmpty() {
	apitest.New().
		Handler(suite.handler).
		Get("/api/user/bob/bundles").
		Expect(suite.T()).
		Status(http.StatusOK).
		Body(`[]`).
		End()
}

func (suite *ServerTestSuite) TestSimilarBundles() {
	apitest.New().
		Handler(suite.handler).
		Get("/api/bundles/pair/similar").
		Expect(suite.T()).
		Status(http.StatusOK).
		Body(marshal(suite.T(), []BundleScore{
			{BundleId: "quad", Similarity: 0.5},
		})).
		End()
}

func (suite *ServerTestSuite) TestSimilarBundlesNotFound() {
	apitest.New().
		Handler(suite.handler).
		Get("/api/bundles/mega/similar").
		Expect(suite.T()).
		Status(http.StatusNotFound).
		End()
}

func (suite *ServerTestSuite) TestItems() {
	apitest.New().
		Handler(suite.handler).
		Get("/api/items").
		Expect(suite.T()).
		Status(http.StatusOK).
		Body(marshal(suite.T(), []string{"10", "20", "30", "40", "50"})).
		End()
}

func (suite *ServerTestSuite) TestHealth() {
	apitest.New().
		Handler(suite.handler).
		Get("/api/health").
		Expect(suite.T()).
		Status(http.StatusOK).
		Body(marshal(suite.T(), Health{
			NumItems:              5,
			NumUsers:              2,
			NumBundles:            2,
			NumSimilarityMatrices: 1,
		})).
		End()
}

func TestServer(t *testing.T) {
	suite.Run(t, new(ServerTestSuite))
}
