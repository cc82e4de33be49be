package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChangedFiles(t *testing.T) {
	patch := `diff --git a/api/login.py b/api/login.py
index 1111111..2222222 100644
--- a/api/login.py
+++ b/api/login.py
@@ -10,2 +10,4 @@ def login(request):
+    if not validate_token(request.token):
+        raise AuthError()
diff --git a/api/routes.py b/api/routes.py
--- a/api/routes.py
+++ b/api/routes.py
@@ -1,1 +0,0 @@
-legacy_route()
`

	assert.Equal(t, []string{"api/login.py", "api/routes.py"}, ChangedFiles(patch))

	t.Run("non-diff text yields nothing", func(t *testing.T) {
		assert.Empty(t, ChangedFiles("just some prose\nwith lines\n"))
		assert.Empty(t, ChangedFiles(""))
	})

	t.Run("repeated headers are deduplicated", func(t *testing.T) {
		twice := patch + patch
		assert.Equal(t, []string{"api/login.py", "api/routes.py"}, ChangedFiles(twice))
	})
}
