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

// Package server exposes the recommenders over a RESTful API. It translates
// external identifiers to internal indices on the way in and back on the
// way out; the engine itself never sees identifiers or presentation
// metadata.
package server

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	restfulspec "github.com/emicklei/go-restful-openapi/v2"
	"github.com/emicklei/go-restful/v3"
	"github.com/juju/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/gamerec/gamerec/artifact"
	"github.com/gamerec/gamerec/base/log"
	"github.com/gamerec/gamerec/config"
	"github.com/gamerec/gamerec/logics"
)

// RestServer implements a REST-ful API server over a loaded artifact store.
type RestServer struct {
	Config     *config.Config
	Store      *artifact.Store
	HttpHost   string
	HttpPort   int
	WebService *restful.WebService

	nextItem         *logics.NextItem
	bundleCompletion *logics.BundleCompletion
	crossBundle      *logics.CrossBundle
}

// NewRestServer builds the recommenders and the web service. It fails when
// the configured similarity matrix does not exist so the process never
// serves with a broken core.
func NewRestServer(cfg *config.Config, store *artifact.Store) (*RestServer, error) {
	nextItem, err := logics.NewNextItem(store, cfg.Recommend.SimilarityMatrix, cfg.Recommend.Alpha)
	if err != nil {
		return nil, errors.Trace(err)
	}
	s := &RestServer{
		Config:           cfg,
		Store:            store,
		HttpHost:         cfg.HTTP.Host,
		HttpPort:         cfg.HTTP.Port,
		WebService:       new(restful.WebService),
		nextItem:         nextItem,
		bundleCompletion: logics.NewBundleCompletion(store),
	}
	if store.BundleSimilarity != nil {
		if s.crossBundle, err = logics.NewCrossBundle(store); err != nil {
			return nil, errors.Trace(err)
		}
	}
	ItemsTotal.Set(float64(store.NumItems()))
	UsersTotal.Set(float64(store.NumUsers()))
	BundlesTotal.Set(float64(store.NumBundles()))
	return s, nil
}

// StartHttpServer starts the REST-ful API server.
func (s *RestServer) StartHttpServer() {
	// register restful APIs
	s.CreateWebService()
	restful.DefaultContainer.Add(s.WebService)
	// register openapi specification
	specConfig := restfulspec.Config{
		WebServices: restful.RegisteredWebServices(),
		APIPath:     "/apidocs.json",
	}
	restful.DefaultContainer.Add(restfulspec.NewOpenAPIService(specConfig))
	// register prometheus
	http.Handle("/metrics", promhttp.Handler())

	log.Logger().Info("start http server",
		zap.String("url", fmt.Sprintf("http://%s:%d", s.HttpHost, s.HttpPort)))
	log.Logger().Fatal("failed to start http server",
		zap.Error(http.ListenAndServe(fmt.Sprintf("%s:%d", s.HttpHost, s.HttpPort), nil)))
}

func LogFilter(req *restful.Request, resp *restful.Response, chain *restful.FilterChain) {
	chain.ProcessFilter(req, resp)
	log.Logger().Info(fmt.Sprintf("%s %s", req.Request.Method, req.Request.URL),
		zap.Int("status_code", resp.StatusCode()))
}

// ItemScore is a recommended item with presentation metadata attached.
type ItemScore struct {
	ItemId   string  `json:"item_id"`
	Score    float32 `json:"score"`
	ImageURL string  `json:"image_url"`
}

// BundleScore is a recommended bundle.
type BundleScore struct {
	BundleId   string  `json:"bundle_id"`
	Similarity float32 `json:"similarity"`
}

// Health reports the dimensions of the loaded store.
type Health struct {
	NumItems              int `json:"n_items"`
	NumUsers              int `json:"n_users"`
	NumBundles            int `json:"n_bundles"`
	NumSimilarityMatrices int `json:"n_similarity_matrices"`
}

// CreateWebService creates the web service.
func (s *RestServer) CreateWebService() {
	ws := s.WebService
	ws.Consumes(restful.MIME_JSON).Produces(restful.MIME_JSON)
	ws.Path("/api/")
	ws.Filter(LogFilter)

	// Get next-item recommendations
	ws.Route(ws.GET("/recommend/next/{user-id}").To(s.getRecommendNext).
		Doc("Get next-item recommendations for a user.").
		Metadata(restfulspec.KeyOpenAPITags, []string{"recommend"}).
		Param(ws.PathParameter("user-id", "identifier of the user").DataType("string")).
		Param(ws.QueryParameter("n", "number of returned items").DataType("int")).
		Param(ws.QueryParameter("exclude-owned", "exclude items the user owns").DataType("bool")).
		Writes([]ItemScore{}))
	// Get bundle completion recommendations
	ws.Route(ws.GET("/recommend/bundles/{user-id}").To(s.getRecommendBundles).
		Doc("Get recommendations completing the user's partially owned bundles.").
		Metadata(restfulspec.KeyOpenAPITags, []string{"recommend"}).
		Param(ws.PathParameter("user-id", "identifier of the user").DataType("string")).
		Param(ws.QueryParameter("n", "number of returned items").DataType("int")).
		Param(ws.QueryParameter("min-ownership", "minimum ownership ratio").DataType("float")).
		Writes([]ItemScore{}))
	// Get partially owned bundles
	ws.Route(ws.GET("/user/{user-id}/bundles").To(s.getUserBundles).
		Doc("Get the bundles the user partially owns.").
		Metadata(restfulspec.KeyOpenAPITags, []string{"bundle"}).
		Param(ws.PathParameter("user-id", "identifier of the user").DataType("string")).
		Writes([]logics.PartialBundle{}))
	// Get similar bundles
	ws.Route(ws.GET("/bundles/{bundle-id}/similar").To(s.getSimilarBundles).
		Doc("Get bundles similar to a bundle.").
		Metadata(restfulspec.KeyOpenAPITags, []string{"bundle"}).
		Param(ws.PathParameter("bundle-id", "identifier of the bundle").DataType("string")).
		Param(ws.QueryParameter("n", "number of returned bundles").DataType("int")).
		Param(ws.QueryParameter("min-similarity", "minimum similarity").DataType("float")).
		Writes([]BundleScore{}))
	// Get items
	ws.Route(ws.GET("/items").To(s.getItems).
		Doc("Get all item identifiers.").
		Metadata(restfulspec.KeyOpenAPITags, []string{"item"}).
		Writes([]string{}))
	// Health check
	ws.Route(ws.GET("/health").To(s.getHealth).
		Doc("Get the dimensions of the loaded store.").
		Metadata(restfulspec.KeyOpenAPITags, []string{"health"}).
		Writes(Health{}))
}

func (s *RestServer) getRecommendNext(request *restful.Request, response *restful.Response) {
	start := time.Now()
	userId := request.PathParameter("user-id")
	userIndex, ok := s.Store.Users.Id(userId)
	if !ok {
		PageNotFound(response, errors.Errorf("user %s not found", userId))
		return
	}
	n, err := ParseInt(request, "n", s.Config.Recommend.DefaultN)
	if err != nil {
		BadRequest(response, err)
		return
	}
	excludeOwned, err := ParseBool(request, "exclude-owned", true)
	if err != nil {
		BadRequest(response, err)
		return
	}
	scores, err := s.nextItem.Recommend(userIndex, n, excludeOwned)
	if err != nil {
		InternalServerError(response, err)
		return
	}
	NextItemRecommendSeconds.Observe(time.Since(start).Seconds())
	Ok(response, s.itemScores(scores))
}

func (s *RestServer) getRecommendBundles(request *restful.Request, response *restful.Response) {
	start := time.Now()
	userId := request.PathParameter("user-id")
	userIndex, ok := s.Store.Users.Id(userId)
	if !ok {
		PageNotFound(response, errors.Errorf("user %s not found", userId))
		return
	}
	n, err := ParseInt(request, "n", s.Config.Recommend.DefaultN)
	if err != nil {
		BadRequest(response, err)
		return
	}
	minOwnership, err := ParseFloat(request, "min-ownership", s.Config.Recommend.MinOwnership)
	if err != nil {
		BadRequest(response, err)
		return
	}
	scores, err := s.bundleCompletion.Recommend(userIndex, n, minOwnership)
	if err != nil {
		InternalServerError(response, err)
		return
	}
	BundleCompletionRecommendSeconds.Observe(time.Since(start).Seconds())
	Ok(response, s.itemScores(scores))
}

func (s *RestServer) getUserBundles(request *restful.Request, response *restful.Response) {
	userId := request.PathParameter("user-id")
	userIndex, ok := s.Store.Users.Id(userId)
	if !ok {
		PageNotFound(response, errors.Errorf("user %s not found", userId))
		return
	}
	partial, err := s.bundleCompletion.GetPartialBundles(userIndex)
	if err != nil {
		InternalServerError(response, err)
		return
	}
	if partial == nil {
		partial = []logics.PartialBundle{}
	}
	Ok(response, partial)
}

func (s *RestServer) getSimilarBundles(request *restful.Request, response *restful.Response) {
	start := time.Now()
	if s.crossBundle == nil {
		PageNotFound(response, errors.New("bundle similarity matrix not loaded"))
		return
	}
	bundleId := request.PathParameter("bundle-id")
	bundleIndex, ok := s.Store.Bundles.Id(bundleId)
	if !ok {
		PageNotFound(response, errors.Errorf("bundle %s not found", bundleId))
		return
	}
	n, err := ParseInt(request, "n", s.Config.Recommend.DefaultN)
	if err != nil {
		BadRequest(response, err)
		return
	}
	minSimilarity, err := ParseFloat(request, "min-similarity", s.Config.Recommend.MinSimilarity)
	if err != nil {
		BadRequest(response, err)
		return
	}
	scores, err := s.crossBundle.Recommend(bundleIndex, n, minSimilarity)
	if err != nil {
		InternalServerError(response, err)
		return
	}
	CrossBundleRecommendSeconds.Observe(time.Since(start).Seconds())
	result := make([]BundleScore, len(scores))
	for i, score := range scores {
		result[i] = BundleScore{BundleId: score.Id, Similarity: score.Similarity}
	}
	Ok(response, result)
}

func (s *RestServer) getItems(_ *restful.Request, response *restful.Response) {
	Ok(response, s.Store.Items.Strings())
}

func (s *RestServer) getHealth(_ *restful.Request, response *restful.Response) {
	Ok(response, Health{
		NumItems:              s.Store.NumItems(),
		NumUsers:              s.Store.NumUsers(),
		NumBundles:            s.Store.NumBundles(),
		NumSimilarityMatrices: len(s.Store.Similarities),
	})
}

// itemScores translates internal indices back to identifiers and attaches
// the store image.
func (s *RestServer) itemScores(scores []logics.Score) []ItemScore {
	result := make([]ItemScore, len(scores))
	for i, score := range scores {
		itemId, _ := s.Store.Items.String(score.Index)
		result[i] = ItemScore{
			ItemId:   itemId,
			Score:    score.Score,
			ImageURL: ImageURL(itemId),
		}
	}
	return result
}

// ImageURL builds the header image of a store item.
func ImageURL(itemId string) string {
	return fmt.Sprintf("https://steamcdn-a.akamaihd.net/steam/apps/%s/header.jpg", itemId)
}

// ParseInt parses integers from the query parameter.
func ParseInt(request *restful.Request, name string, fallback int) (int, error) {
	value := request.QueryParameter(name)
	if value == "" {
		return fallback, nil
	}
	return strconv.Atoi(value)
}

// ParseFloat parses floats from the query parameter.
func ParseFloat(request *restful.Request, name string, fallback float32) (float32, error) {
	value := request.QueryParameter(name)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.ParseFloat(value, 32)
	return float32(parsed), err
}

// ParseBool parses booleans from the query parameter.
func ParseBool(request *restful.Request, name string, fallback bool) (bool, error) {
	value := request.QueryParameter(name)
	if value == "" {
		return fallback, nil
	}
	return strconv.ParseBool(value)
}

// BadRequest returns a bad request error.
func BadRequest(response *restful.Response, err error) {
	response.Header().Set("Access-Control-Allow-Origin", "*")
	log.Logger().Error("bad request", zap.Error(err))
	if err = response.WriteError(http.StatusBadRequest, err); err != nil {
		log.Logger().Error("failed to write error", zap.Error(err))
	}
}

// InternalServerError returns an internal server error.
func InternalServerError(response *restful.Response, err error) {
	response.Header().Set("Access-Control-Allow-Origin", "*")
	log.Logger().Error("internal server error", zap.Error(err))
	if err = response.WriteError(http.StatusInternalServerError, err); err != nil {
		log.Logger().Error("failed to write error", zap.Error(err))
	}
}

// PageNotFound returns a not found error.
func PageNotFound(response *restful.Response, err error) {
	response.Header().Set("Access-Control-Allow-Origin", "*")
	if err := response.WriteError(http.StatusNotFound, err); err != nil {
		log.Logger().Error("failed to write error", zap.Error(err))
	}
}

// Ok sends the content as JSON to the client.
func Ok(response *restful.Response, content interface{}) {
	response.Header().Set("Access-Control-Allow-Origin", "*")
	if err := response.WriteAsJson(content); err != nil {
		log.Logger().Error("failed to write json", zap.Error(err))
	}
}
