// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package inventoryuc

import (
	"context"
	"time"

	"github.com/momeni/carmaint/pkg/core/log"
)

// DefaultRefreshInterval is the period of background reloads when no
// other interval is configured.
const DefaultRefreshInterval = 5 * time.Minute

// Refresh reloads the domain cache every interval until ctx is done.
// Reload failures are logged and do not stop the loop, so the cache
// recovers as soon as the backend does. Refresh blocks, so it should
// be run in its own goroutine.
func (uc *UseCase) Refresh(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if err := uc.Reload(ctx); err != nil && ctx.Err() == nil {
				log.Warn(ctx, "periodic reload failed", log.Err("err", err))
			}
		case <-ctx.Done():
			return
		}
	}
}
