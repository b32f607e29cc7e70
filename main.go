/*
Copyright 2021.

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
	// Register the SQL drivers consulted when bindings.probe.sql-drivers is enabled.
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"

	// Import all Kubernetes client auth plugins (e.g. Azure, GCP, OIDC, etc.)
	// to ensure that the kubernetes source can make use of them.
	_ "k8s.io/client-go/plugin/pkg/client/auth"

	"github.com/redhat-developer/service-binding-properties/pkg/cli"
)

func main() {
	cli.Execute()
}
