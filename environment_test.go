package poorify_test

import (
	"testing"
	"time"

	"github.com/poorify/poorify"
	"github.com/stretchr/testify/require"
)

func TestEnvironmentValid(t *testing.T) {
	for _, tc := range []struct {
		name  string
		input poorify.Environment
		err   error
	}{
		{"Zero-Value", "", poorify.ErrNotValid},
		{"Lowercase", "development", poorify.ErrNotValid},
		{"Development", poorify.Development, nil},
		{"Production", poorify.Production, nil},
		{"Staging", poorify.Staging, nil},
		{"Testing", poorify.Testing, nil},
	} {
		t.Run(tc.name, func(t *testing.T) {
			require.ErrorIs(t, tc.input.Valid(), tc.err)
		})
	}
}

func TestEnvironmentCanUseServiceStub(t *testing.T) {
	require.True(t, poorify.Development.CanUseServiceStub())
	require.True(t, poorify.Testing.CanUseServiceStub())
	require.False(t, poorify.Staging.CanUseServiceStub())
	require.False(t, poorify.Production.CanUseServiceStub())
}

func TestEnvVarOrEnv(t *testing.T) {
	// Arrange
	key := "POORIFY_TEST_ENVIRONMENT"

	// Act + Assert
	require.Equal(t, poorify.Development, poorify.EnvVarOrEnv(key, poorify.Development))

	// Arrange
	t.Setenv(key, "staging")

	// Act + Assert
	require.Equal(t, poorify.Staging, poorify.EnvVarOrEnv(key, poorify.Development))

	// Arrange
	t.Setenv(key, "nowhere")

	// Act + Assert
	require.Equal(t, poorify.Development, poorify.EnvVarOrEnv(key, poorify.Development))
}

func TestEnvVarOrInt(t *testing.T) {
	// Arrange
	key := "POORIFY_TEST_PORT"

	// Act + Assert
	require.Equal(t, 5000, poorify.EnvVarOrInt(key, 5000))

	// Arrange
	t.Setenv(key, "8080")

	// Act + Assert
	require.Equal(t, 8080, poorify.EnvVarOrInt(key, 5000))

	// Arrange
	t.Setenv(key, "eighty")

	// Act + Assert
	require.Equal(t, 5000, poorify.EnvVarOrInt(key, 5000))
}

func TestEnvVarOrDuration(t *testing.T) {
	key := "POORIFY_TEST_DURATION"
	require.Equal(t, time.Second, poorify.EnvVarOrDuration(key, time.Second))

	t.Setenv(key, "1m")
	require.Equal(t, time.Minute, poorify.EnvVarOrDuration(key, time.Second))

	t.Setenv(key, " 30 ")
	require.Equal(t, 30*time.Second, poorify.EnvVarOrDuration(key, time.Second))

	t.Setenv(key, "soon")
	require.Equal(t, time.Second, poorify.EnvVarOrDuration(key, time.Second))
}

func TestEnvVarOrStrings(t *testing.T) {
	for _, tc := range []struct {
		name     string
		val      string
		expected []string
	}{
		{"Unset", "", []string{"default"}},
		{"One", "http://localhost:8080", []string{"http://localhost:8080"}},
		{"Many", "a, b,c", []string{"a", "b", "c"}},
		{"Only-Commas", ",,", []string{"default"}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("POORIFY_TEST_STRINGS", tc.val)
			require.Equal(t, tc.expected, poorify.EnvVarOrStrings("POORIFY_TEST_STRINGS", []string{"default"}))
		})
	}
}

func TestEnvVarOrURL(t *testing.T) {
	key := "POORIFY_TEST_URL"

	for _, tc := range []struct {
		name     string
		val      string
		def      string
		expected string
	}{
		{"Unset", "", "http://localhost:5000/path?q=1", "http://localhost:5000/"},
		{"Set", "https://poorify.example.com", "http://localhost:5000", "https://poorify.example.com"},
		{"Relative", "/poorify", "http://localhost:5000", "http://localhost:5000/"},
		{"Bad-Default", "https://poorify.example.com", "not a url", "https://poorify.example.com"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			t.Setenv(key, tc.val)

			// Act
			u := poorify.EnvVarOrURL(key, tc.def)

			// Assert
			require.NotNil(t, u)
			require.Equal(t, tc.expected, u.String())
		})
	}

	t.Run("Neither", func(t *testing.T) {
		t.Setenv(key, "")
		require.Nil(t, poorify.EnvVarOrURL(key, "not a url"))
	})
}
