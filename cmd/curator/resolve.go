package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"curator/internal/api"
)

// resolveSuggestionID accepts either a full suggestion ID or a unique prefix
// (as printed in listings) and returns the full ID.
func resolveSuggestionID(ctx context.Context, service *api.Service, idOrPrefix string) (string, error) {
	idOrPrefix = strings.TrimSpace(idOrPrefix)
	if idOrPrefix == "" {
		return "", errors.New("suggestion id must not be empty")
	}

	if _, err := service.Describe(ctx, idOrPrefix); err == nil {
		return idOrPrefix, nil
	} else if !errors.Is(err, api.ErrNotFound) {
		return "", err
	}

	suggestions, err := service.List(ctx, "")
	if err != nil {
		return "", err
	}

	var matches []string
	for _, sg := range suggestions {
		if strings.HasPrefix(sg.ID, idOrPrefix) {
			matches = append(matches, sg.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w: %s", api.ErrNotFound, idOrPrefix)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("suggestion id prefix %q is ambiguous (%d matches)", idOrPrefix, len(matches))
	}
}
