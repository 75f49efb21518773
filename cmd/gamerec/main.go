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
package main

import (
	"fmt"
	_ "net/http/pprof"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gamerec/gamerec/artifact"
	"github.com/gamerec/gamerec/base/log"
	"github.com/gamerec/gamerec/cmd/version"
	"github.com/gamerec/gamerec/config"
	"github.com/gamerec/gamerec/server"
)

var serverCommand = &cobra.Command{
	Use:   "gamerec",
	Short: "The serving node of the gamerec recommender system.",
	Run: func(cmd *cobra.Command, args []string) {
		// show version
		if showVersion, _ := cmd.PersistentFlags().GetBool("version"); showVersion {
			fmt.Println(version.BuildInfo())
			return
		}
		// setup logger
		debug, _ := cmd.PersistentFlags().GetBool("debug")
		log.SetLogger(cmd.PersistentFlags(), debug)
		// load config
		configPath, _ := cmd.PersistentFlags().GetString("config")
		log.Logger().Info("load config", zap.String("config", configPath))
		conf, err := config.LoadConfig(configPath)
		if err != nil {
			log.Logger().Fatal("failed to load config", zap.Error(err))
		}
		// load artifacts
		overrides := make(map[string]any)
		if conf.Artifacts.ItemCatalogPath != "" {
			catalog, err := artifact.ReadCatalogCSV(conf.Artifacts.ItemCatalogPath, conf.Artifacts.ItemCatalogColumn)
			if err != nil {
				log.Logger().Fatal("failed to read item catalog", zap.Error(err))
			}
			overrides[artifact.KeyItemIndex] = catalog
		}
		store, err := artifact.LoadFile(conf.Artifacts.Path, overrides)
		if err != nil {
			log.Logger().Fatal("failed to load artifacts", zap.Error(err))
		}
		// start server
		s, err := server.NewRestServer(conf, store)
		if err != nil {
			log.Logger().Fatal("failed to create server", zap.Error(err))
		}
		s.StartHttpServer()
	},
}

func init() {
	log.AddFlags(serverCommand.PersistentFlags())
	serverCommand.PersistentFlags().BoolP("version", "v", false, "gamerec version")
	serverCommand.PersistentFlags().StringP("config", "c", "config.toml", "configuration file path")
	serverCommand.PersistentFlags().Bool("debug", false, "use debug log mode")
}

func main() {
	if err := serverCommand.Execute(); err != nil {
		log.Logger().Fatal("failed to execute", zap.Error(err))
	}
}
