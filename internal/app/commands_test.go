package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjregee/tibr/internal/models"
)

func TestInvokeDispatchesByName(t *testing.T) {
	fake, server := newFakeOllama(t)
	a := newTestApp(t, server.URL)

	result, err := a.Invoke("chat", `{"model":"llama3","messages":[{"role":"user","content":"x"}]}`)
	require.NoError(t, err)
	assert.Contains(t, result, "assistant")
	assert.JSONEq(t, `{"model":"llama3","messages":[{"role":"user","content":"x"}],"stream":false}`, fake.request("/api/chat"))

	_, err = a.Invoke("chat", `{"model":"llama3","messages":"[{\"role\":\"user\",\"content\":\"y\"}]"}`)
	require.NoError(t, err)
	assert.JSONEq(t, `{"model":"llama3","messages":[{"role":"user","content":"y"}],"stream":false}`, fake.request("/api/chat"))

	result, err = a.Invoke("list_local_models", "")
	require.NoError(t, err)
	descriptors, ok := result.([]*models.ModelDescriptor)
	require.True(t, ok)
	assert.Len(t, descriptors, 2)
}

func TestInvokeStoresMessagesAsText(t *testing.T) {
	_, server := newFakeOllama(t)
	a := newTestApp(t, server.URL)

	_, err := a.Invoke("saveChatDialog", `{"id":"d1","description":"d","messages":[{"role":"user","content":"x"}]}`)
	require.NoError(t, err)
	_, err = a.Invoke("save_chat_dialog", `{"id":"d2","description":"d","messages":"[]"}`)
	require.NoError(t, err)

	result, err := a.Invoke("getChatDialog", `{"id":"d1"}`)
	require.NoError(t, err)
	assert.Equal(t, []string{`[{"role":"user","content":"x"}]`}, result)

	result, err = a.Invoke("getChatDialog", `{"id":"d2"}`)
	require.NoError(t, err)
	assert.Equal(t, []string{"[]"}, result)

	result, err = a.Invoke("createChatDialog", `{"description":"new","messages":[]}`)
	require.NoError(t, err)
	assert.NotEmpty(t, result)
}

func TestInvokeFileCommands(t *testing.T) {
	_, server := newFakeOllama(t)
	a := newTestApp(t, server.URL)

	path := filepath.Join(t.TempDir(), "a.md")
	result, err := a.Invoke("saveFile", `{"data":"hello","filePath":"`+filepath.ToSlash(path)+`"}`)
	require.NoError(t, err)
	assert.Equal(t, "success", result)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(content))

	result, err = a.Invoke("read_file", `{"filePath":"`+filepath.ToSlash(path)+`"}`)
	require.NoError(t, err)
	assert.Equal(t, "hello", result)
}

func TestInvokeRejectsBadInput(t *testing.T) {
	_, server := newFakeOllama(t)
	a := newTestApp(t, server.URL)

	_, err := a.Invoke("nope", "{}")
	require.EqualError(t, err, "unknown command: nope")

	_, err = a.Invoke("readFile", "{")
	require.Error(t, err)

	_, err = a.Invoke("readFile", "[1]")
	require.Error(t, err)
}

func TestCommandsListsCamelCaseNames(t *testing.T) {
	_, server := newFakeOllama(t)
	a := newTestApp(t, server.URL)

	names := a.Commands()
	assert.Contains(t, names, "chat")
	assert.Contains(t, names, "initializeDb")
	assert.Contains(t, names, "getSourceCode")
	assert.NotContains(t, names, "initialize_db")
	assert.NotContains(t, names, "selectProjectDirectory")
	assert.IsIncreasing(t, names)
}

func TestSnakeCase(t *testing.T) {
	assert.Equal(t, "initialize_db", snakeCase("initializeDb"))
	assert.Equal(t, "list_local_models", snakeCase("listLocalModels"))
	assert.Equal(t, "chat", snakeCase("chat"))
}

func TestInvokeGetSourceCodeReturnsList(t *testing.T) {
	_, server := newFakeOllama(t)
	a := newTestApp(t, server.URL)

	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.md"), []byte("a"), 0644))

	result, err := a.Invoke("get_source_code", `{"projectPath":"`+filepath.ToSlash(root)+`"}`)
	require.NoError(t, err)
	assert.Equal(t, []string{"./a.md"}, result)
}

func TestInvokeClearRecentProjects(t *testing.T) {
	_, server := newFakeOllama(t)
	a := newTestApp(t, server.URL)

	root := t.TempDir()
	_, err := a.Invoke("getProjectInfo", `{"projectPath":"`+filepath.ToSlash(root)+`"}`)
	require.NoError(t, err)

	result, err := a.Invoke("getRecentProjects", "")
	require.NoError(t, err)
	assert.Equal(t, []string{root}, result)

	_, err = a.Invoke("clear_recent_projects", "")
	require.NoError(t, err)

	result, err = a.Invoke("getRecentProjects", "")
	require.NoError(t, err)
	assert.Equal(t, []string{}, result)
}
