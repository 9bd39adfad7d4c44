// Copyright 2023 LiveKit, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package types

import "strings"

type ParticipantID string

type Role string

const (
	RoleBackstage Role = "backstage"
	RoleStage     Role = "stage"

	// key of the role entry inside a participant's user data
	UserDataRoleKey = "role"
)

func (r Role) Valid() bool {
	return r == RoleBackstage || r == RoleStage
}

func (r Role) Opposite() Role {
	if r == RoleStage {
		return RoleBackstage
	}
	return RoleStage
}

func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", false
	}
	return r, true
}

// RoleSource tells where a participant's role came from. A confirmed role was read from the
// participant's own user data; a cached one is the local mirror used until user data arrives.
type RoleSource struct {
	Role      Role
	Confirmed bool
}

func Confirmed(r Role) RoleSource {
	return RoleSource{Role: r, Confirmed: true}
}

func Cached(r Role) RoleSource {
	return RoleSource{Role: r}
}

// ResolveRole picks the role for a participant snapshot. A valid role in user data always wins,
// then the cached role, then backstage.
func ResolveRole(userData map[string]interface{}, cached Role) RoleSource {
	if userData != nil {
		if v, ok := userData[UserDataRoleKey]; ok {
			if s, ok := v.(string); ok {
				if r, ok := ParseRole(s); ok {
					return Confirmed(r)
				}
			}
		}
	}
	if cached.Valid() {
		return Cached(cached)
	}
	return Cached(RoleBackstage)
}

func RoleUserData(r Role) map[string]interface{} {
	return map[string]interface{}{UserDataRoleKey: string(r)}
}
