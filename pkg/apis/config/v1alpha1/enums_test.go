package v1alpha1_test

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vimoxide/vimoxide/pkg/apis/config/v1alpha1"
)

var _ pflag.Value = (*v1alpha1.Executor)(nil)

func TestExecutor_Default(t *testing.T) {
	t.Parallel()

	var executor v1alpha1.Executor
	assert.Equal(t, v1alpha1.ExecutorVim, executor.Default())
}

func TestExecutor_ValidValues(t *testing.T) {
	t.Parallel()

	var executor v1alpha1.Executor

	assert.Equal(t, []string{"vim", "nvim"}, executor.ValidValues())
	assert.Equal(t, "Executor", executor.Type())
}

func TestExecutor_Set(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		value   string
		want    v1alpha1.Executor
		wantErr bool
	}{
		"vim":             {value: "vim", want: v1alpha1.ExecutorVim},
		"nvim":            {value: "nvim", want: v1alpha1.ExecutorNeovim},
		"emacs":           {value: "emacs", wantErr: true},
		"empty":           {value: "", wantErr: true},
		"case sensitive":  {value: "NVIM", wantErr: true},
		"whitespace kept": {value: " vim", wantErr: true},
	}

	for name, testCase := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var executor v1alpha1.Executor

			err := executor.Set(testCase.value)
			if testCase.wantErr {
				require.ErrorIs(t, err, v1alpha1.ErrInvalidExecutor)
				assert.Empty(t, executor.String())

				return
			}

			require.NoError(t, err)
			assert.Equal(t, testCase.want, executor)
			assert.Equal(t, testCase.value, executor.String())
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	require.NoError(t, v1alpha1.NewConfig().Validate())
	require.ErrorIs(t, (&v1alpha1.Config{Executor: "emacs"}).Validate(), v1alpha1.ErrInvalidExecutor)
}
