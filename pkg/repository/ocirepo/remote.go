// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package ocirepo

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/jdx/go-netrc"
	"oras.land/oras-go/v2/registry/remote"
	"oras.land/oras-go/v2/registry/remote/auth"
	"oras.land/oras-go/v2/registry/remote/credentials"
	"oras.land/oras-go/v2/registry/remote/retry"
)

// Remote is a registry client shared by all repositories of one registry
type Remote struct {
	Registry string
	client   *auth.Client

	// Use http instead of https.
	// This is merely a hint to consumers of Remote, and not something that is enforced by Client
	Insecure bool
}

var _ remote.Client = (*Remote)(nil)

type Credentials struct {
	// docker-style config.json
	AuthPath string
	// netrc file; takes precedence over AuthPath
	NetrcPath string
}

func (r *Remote) Repo(repoName string) (*remote.Repository, error) {
	repo, err := remote.NewRepository(fmt.Sprintf("%s/%s", r.Registry, repoName))
	if err != nil {
		return nil, err
	}

	repo.Client = r
	repo.PlainHTTP = r.Insecure
	return repo, nil
}

func NewWithCustomClient(registry string, client *auth.Client, insecure bool) *Remote {
	return &Remote{
		Registry: registry,
		client:   client,
		Insecure: insecure,
	}
}

func NewRemote(registry string, creds Credentials, insecure bool, userAgent string) (*Remote, error) {
	client := &auth.Client{
		Client: retry.DefaultClient,
		Cache:  auth.NewCache(),
	}
	client.SetUserAgent(userAgent)

	cred, err := credentialFunc(registry, creds)
	if err != nil {
		return nil, err
	}
	client.Credential = cred

	return &Remote{
		Registry: registry,
		client:   client,
		Insecure: insecure,
	}, nil
}

func credentialFunc(registry string, creds Credentials) (auth.CredentialFunc, error) {
	switch {
	case creds.NetrcPath != "":
		slog.Debug("using netrc credentials for registry", "path", creds.NetrcPath, "registry", registry)
		n, err := netrc.Parse(creds.NetrcPath)
		if err != nil {
			return nil, fmt.Errorf("failed to parse netrc %s: %w", creds.NetrcPath, err)
		}
		machine := n.Machine(hostname(registry))
		if machine == nil {
			slog.Debug("no netrc entry for registry. Requests to registry will be unauthenticated", "registry", registry)
			return nil, nil
		}
		return auth.StaticCredential(registry, auth.Credential{
			Username: machine.Get("login"),
			Password: machine.Get("password"),
		}), nil

	case creds.AuthPath != "":
		slog.Info("using custom auth for registry", "path", creds.AuthPath)
		ds, err := credentials.NewStore(creds.AuthPath, credentials.StoreOptions{})
		if err != nil {
			return nil, err
		}
		return credentials.Credential(readOnlyStore{ds}), nil

	default:
		slog.Debug("no custom registry auth provided. Will default to docker's if present on system")
		ds, err := credentials.NewStoreFromDocker(credentials.StoreOptions{})
		if err != nil {
			slog.Debug("failed to determine docker config to default to. Requests to registry will be unauthenticated", "err", err.Error())
			return nil, nil
		}
		return credentials.Credential(readOnlyStore{ds}), nil
	}
}

func hostname(registry string) string {
	u, err := url.Parse("//" + registry)
	if err != nil {
		return registry
	}
	return u.Hostname()
}

func (r *Remote) Do(req *http.Request) (*http.Response, error) {
	slog.Debug("OCI request", "method", req.Method, "url", req.URL.String())
	return r.client.Do(req)
}

// readOnlyStore keeps resolution from ever writing to the user's credentials
type readOnlyStore struct {
	credentials.Store
}

func (readOnlyStore) Put(context.Context, string, auth.Credential) error {
	return fmt.Errorf("read-only credential store does not allow put operations")
}

func (readOnlyStore) Delete(context.Context, string) error {
	return fmt.Errorf("read-only credential store does not allow delete operations")
}
