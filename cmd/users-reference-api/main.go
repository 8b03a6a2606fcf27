/*
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package main

import (
	"context"
	"errors"
	goflag "flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/unikorn-cloud/users-contract/pkg/server"
	"github.com/unikorn-cloud/users-contract/pkg/server/handler"
	"github.com/unikorn-cloud/users-contract/pkg/users"

	cr "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/log"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"
)

var errMissingToken = errors.New("at least one --token is required")

type options struct {
	listenAddress   string
	tokens          []string
	seed            int
	shutdownTimeout time.Duration
	zap             zap.Options
}

func (o *options) addFlags(f *pflag.FlagSet) {
	f.StringVar(&o.listenAddress, "listen-address", ":8080", "Address to serve the users API on.")
	f.StringSliceVar(&o.tokens, "token", nil, "Bearer token accepted as valid, may be specified more than once.")
	f.IntVar(&o.seed, "seed", 0, "Number of random users to create at start up.")
	f.DurationVar(&o.shutdownTimeout, "shutdown-timeout", 10*time.Second, "Time allowed for in flight requests to drain.")

	flags := goflag.NewFlagSet("zap", goflag.ExitOnError)
	o.zap.BindFlags(flags)
	f.AddGoFlagSet(flags)
}

func run(ctx context.Context, o *options) error {
	logger := log.Log.WithName("users-reference-api")

	if len(o.tokens) == 0 {
		return errMissingToken
	}

	store := users.NewStore()

	if o.seed > 0 {
		if _, err := users.Seed(ctx, store, o.seed); err != nil {
			return err
		}

		logger.Info("seeded users", "count", o.seed)
	}

	s := &http.Server{
		Addr:              o.listenAddress,
		ReadHeaderTimeout: 5 * time.Second,
		Handler:           server.New(logger, store, &handler.Options{Tokens: o.tokens}),
	}

	go func() {
		<-ctx.Done()

		// Use a new context, the parent is already cancelled.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), o.shutdownTimeout)
		defer cancel()

		if err := s.Shutdown(shutdownCtx); err != nil {
			logger.Error(err, "server shutdown error")
		}
	}()

	logger.Info("serving", "address", o.listenAddress)

	if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func main() {
	o := &options{}

	o.addFlags(pflag.CommandLine)

	pflag.Parse()

	log.SetLogger(zap.New(zap.UseFlagOptions(&o.zap)))

	ctx := cr.SetupSignalHandler()

	if err := run(ctx, o); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
