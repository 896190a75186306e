package app

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/tidwall/gjson"
)

// command runs one UI command with its arguments given as a JSON object.
type command func(args gjson.Result) (any, error)

func (a *App) registerCommand(name string, fn command) {
	if a.commands == nil {
		a.commands = make(map[string]command)
	}
	a.commands[name] = fn
	if snake := snakeCase(name); snake != name {
		a.commands[snake] = fn
	}
}

func (a *App) registerCommands() {
	a.registerCommand("chat", func(args gjson.Result) (any, error) {
		return a.Chat(args.Get("model").String(), rawArg(args, "messages"))
	})
	a.registerCommand("generate", func(args gjson.Result) (any, error) {
		return a.Generate(args.Get("model").String(), args.Get("prompt").String())
	})
	a.registerCommand("listLocalModels", func(gjson.Result) (any, error) {
		return a.ListLocalModels()
	})
	a.registerCommand("getProjectInfo", func(args gjson.Result) (any, error) {
		return a.GetProjectInfo(args.Get("projectPath").String())
	})
	a.registerCommand("getRecentProjects", func(gjson.Result) (any, error) {
		return a.GetRecentProjects()
	})
	a.registerCommand("clearRecentProjects", func(gjson.Result) (any, error) {
		return nil, a.ClearRecentProjects()
	})
	a.registerCommand("readFile", func(args gjson.Result) (any, error) {
		return a.ReadFile(args.Get("filePath").String())
	})
	a.registerCommand("saveFile", func(args gjson.Result) (any, error) {
		return a.SaveFile(args.Get("data").String(), args.Get("filePath").String())
	})
	a.registerCommand("getSourceCode", func(args gjson.Result) (any, error) {
		return a.GetSourceCode(args.Get("projectPath").String())
	})
	a.registerCommand("exportMarkdown", func(args gjson.Result) (any, error) {
		return a.ExportMarkdown(args.Get("projectPath").String())
	})
	a.registerCommand("exportMessages", func(args gjson.Result) (any, error) {
		return nil, a.ExportMessages(args.Get("filePath").String(), textArg(args, "messages"))
	})
	a.registerCommand("suggestDialogDescription", func(args gjson.Result) (any, error) {
		return a.SuggestDialogDescription(textArg(args, "messages"))
	})
	a.registerCommand("initializeDb", func(gjson.Result) (any, error) {
		return nil, a.InitializeDb()
	})
	a.registerCommand("saveChatDialog", func(args gjson.Result) (any, error) {
		return nil, a.SaveChatDialog(args.Get("id").String(), args.Get("description").String(), textArg(args, "messages"))
	})
	a.registerCommand("createChatDialog", func(args gjson.Result) (any, error) {
		return a.CreateChatDialog(args.Get("id").String(), args.Get("description").String(), textArg(args, "messages"))
	})
	a.registerCommand("updateChatDialog", func(args gjson.Result) (any, error) {
		return nil, a.UpdateChatDialog(args.Get("id").String(), textArg(args, "messages"))
	})
	a.registerCommand("getChatDialog", func(args gjson.Result) (any, error) {
		return a.GetChatDialog(args.Get("id").String())
	})
	a.registerCommand("getChatHistory", func(gjson.Result) (any, error) {
		return a.GetChatHistory()
	})
	a.registerCommand("saveProfile", func(args gjson.Result) (any, error) {
		return nil, a.SaveProfile(args.Get("id").String(), args.Get("email").String(), textArg(args, "preferences"))
	})
	a.registerCommand("createProfile", func(args gjson.Result) (any, error) {
		return a.CreateProfile(args.Get("id").String(), args.Get("email").String(), textArg(args, "preferences"))
	})
	a.registerCommand("updateProfile", func(args gjson.Result) (any, error) {
		return nil, a.UpdateProfile(args.Get("id").String(), args.Get("email").String(), textArg(args, "preferences"))
	})
	a.registerCommand("getProfiles", func(gjson.Result) (any, error) {
		return a.GetProfiles()
	})
}

// Invoke runs the command called name. args is a JSON object keyed by
// argument name and may be empty.
func (a *App) Invoke(name string, args string) (any, error) {
	fn, ok := a.commands[name]
	if !ok {
		return nil, fmt.Errorf("unknown command: %s", name)
	}

	args = strings.TrimSpace(args)
	if args == "" {
		args = "{}"
	}
	if !gjson.Valid(args) {
		return nil, fmt.Errorf("arguments for %s are not valid JSON", name)
	}
	parsed := gjson.Parse(args)
	if !parsed.IsObject() {
		return nil, fmt.Errorf("arguments for %s must be a JSON object", name)
	}

	return fn(parsed)
}

// Commands lists the camelCase command names accepted by Invoke.
func (a *App) Commands() []string {
	names := make([]string, 0, len(a.commands))
	for name := range a.commands {
		if !strings.Contains(name, "_") {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// textArg returns a string argument as is and any other JSON value as its
// serialized text.
func textArg(args gjson.Result, key string) string {
	value := args.Get(key)
	switch {
	case !value.Exists():
		return ""
	case value.Type == gjson.String:
		return value.Str
	default:
		return value.Raw
	}
}

// rawArg returns a JSON argument for forwarding. A string holding valid JSON
// is unwrapped.
func rawArg(args gjson.Result, key string) json.RawMessage {
	value := args.Get(key)
	if value.Type == gjson.String && gjson.Valid(value.Str) {
		return json.RawMessage(value.Str)
	}
	return json.RawMessage(value.Raw)
}

func snakeCase(name string) string {
	var b strings.Builder
	for i, r := range name {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}
