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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	NextItemRecommendSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "gamerec",
		Subsystem: "server",
		Name:      "next_item_recommend_seconds",
	})
	BundleCompletionRecommendSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "gamerec",
		Subsystem: "server",
		Name:      "bundle_completion_recommend_seconds",
	})
	CrossBundleRecommendSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "gamerec",
		Subsystem: "server",
		Name:      "cross_bundle_recommend_seconds",
	})
	ItemsTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "gamerec",
		Subsystem: "server",
		Name:      "items_total",
	})
	UsersTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "gamerec",
		Subsystem: "server",
		Name:      "users_total",
	})
	BundlesTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "gamerec",
		Subsystem: "server",
		Name:      "bundles_total",
	})
)
