package cmd

import (
	"fmt"

	"github.com/alecthomas/kong"
)

type CompletionCmd struct {
	Shell string `arg:"" help:"Shell type: bash, zsh, or fish"`
}

func (c *CompletionCmd) Run(ctx *kong.Context) error {
	script, err := completionScript(c.Shell)
	if err != nil {
		return err
	}
	fmt.Fprint(ctx.Stdout, script)
	return nil
}

func completionScript(shell string) (string, error) {
	switch shell {
	case "bash":
		return bashCompletion, nil
	case "zsh":
		return zshCompletion, nil
	case "fish":
		return fishCompletion, nil
	default:
		return "", fmt.Errorf("unsupported shell: %s (supported: bash, zsh, fish)", shell)
	}
}

const bashCompletion = `# bash completion for go3mfexport

_go3mfexport_completions() {
    local cur prev opts
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"

    # Main commands
    if [[ ${COMP_CWORD} -eq 1 ]]; then
        opts="export pdf-options version completion"
        COMPREPLY=( $(compgen -W "${opts}" -- ${cur}) )
        return 0
    fi

    # Options for export command
    if [[ ${COMP_WORDS[1]} == "export" ]]; then
        case "${prev}" in
            -o|--output)
                COMPREPLY=( $(compgen -f -X '!*.3mf' -- ${cur}) )
                return 0
                ;;
            --unit)
                COMPREPLY=( $(compgen -W "micron millimeter centimeter meter inch foot" -- ${cur}) )
                return 0
                ;;
            --color-mode)
                COMPREPLY=( $(compgen -W "none model selected-only" -- ${cur}) )
                return 0
                ;;
            --material-type)
                COMPREPLY=( $(compgen -W "material color" -- ${cur}) )
                return 0
                ;;
            --color|--precision|--title)
                return 0
                ;;
            *)
                if [[ ${cur} == -* ]]; then
                    opts="-o --output --unit --color-mode --material-type --color --precision --no-metadata --predictable --title --print-model --open -h --help"
                    COMPREPLY=( $(compgen -W "${opts}" -- ${cur}) )
                else
                    COMPREPLY=( $(compgen -f -X '!*.@(stl|yaml|yml)' -- ${cur}) )
                fi
                return 0
                ;;
        esac
    fi

    # Options for pdf-options command
    if [[ ${COMP_WORDS[1]} == "pdf-options" ]]; then
        if [[ ${COMP_CWORD} -eq 2 ]]; then
            COMPREPLY=( $(compgen -W "show edit" -- ${cur}) )
        elif [[ ${prev} == "--settings" ]]; then
            COMPREPLY=( $(compgen -f -X '!*.@(yaml|yml|toml)' -- ${cur}) )
        else
            COMPREPLY=( $(compgen -W "--settings --accessible -h --help" -- ${cur}) )
        fi
        return 0
    fi

    # Options for completion command
    if [[ ${COMP_WORDS[1]} == "completion" ]]; then
        if [[ ${COMP_CWORD} -eq 2 ]]; then
            opts="bash zsh fish"
            COMPREPLY=( $(compgen -W "${opts}" -- ${cur}) )
        fi
        return 0
    fi
}

complete -F _go3mfexport_completions go3mfexport
`

const zshCompletion = `#compdef go3mfexport

_go3mfexport() {
    local -a commands
    commands=(
        'export:Export STL files or a YAML project to 3MF'
        'pdf-options:Show or edit the PDF export options'
        'version:Show version information'
        'completion:Generate shell completion script'
    )

    local -a export_opts
    export_opts=(
        '(-o --output)'{-o,--output}'[Output file path]:output file:_files -g "*.3mf"'
        '--unit[Model unit]:unit:(micron millimeter centimeter meter inch foot)'
        '--color-mode[Color mode]:mode:(none model selected-only)'
        '--material-type[Material type]:type:(material color)'
        '--color[Export color]:color:'
        '--precision[Decimal precision]:digits:'
        '--no-metadata[Do not write metadata]'
        '--predictable[Sort vertices and triangles]'
        '--title[Document title]:title:'
        '--print-model[Print the model XML]'
        '--open[Open the result file in the default application]'
        '(-h --help)'{-h,--help}'[Show help]'
        '*:input files:_files -g "*.{stl,yaml,yml}"'
    )

    local -a pdf_commands
    pdf_commands=(
        'show:Print the persisted PDF options'
        'edit:Edit the PDF options interactively'
    )

    local -a completion_shells
    completion_shells=(
        'bash:Generate bash completion'
        'zsh:Generate zsh completion'
        'fish:Generate fish completion'
    )

    _arguments -C \
        '1: :->command' \
        '*:: :->args'

    case $state in
        command)
            _describe 'command' commands
            ;;
        args)
            case $words[1] in
                export)
                    _arguments $export_opts
                    ;;
                pdf-options)
                    _describe 'pdf-options command' pdf_commands
                    ;;
                completion)
                    _describe 'shell' completion_shells
                    ;;
                version)
                    _arguments '(-h --help)'{-h,--help}'[Show help]'
                    ;;
            esac
            ;;
    esac
}

_go3mfexport
`

const fishCompletion = `# fish completion for go3mfexport

# Main commands
complete -c go3mfexport -f -n "__fish_use_subcommand" -a "export" -d "Export STL files or a YAML project to 3MF"
complete -c go3mfexport -f -n "__fish_use_subcommand" -a "pdf-options" -d "Show or edit the PDF export options"
complete -c go3mfexport -f -n "__fish_use_subcommand" -a "version" -d "Show version information"
complete -c go3mfexport -f -n "__fish_use_subcommand" -a "completion" -d "Generate shell completion script"

# export command options
complete -c go3mfexport -f -n "__fish_seen_subcommand_from export" -s o -l output -d "Output file path" -r -a "(__fish_complete_suffix .3mf)"
complete -c go3mfexport -f -n "__fish_seen_subcommand_from export" -l unit -d "Model unit" -r -a "micron millimeter centimeter meter inch foot"
complete -c go3mfexport -f -n "__fish_seen_subcommand_from export" -l color-mode -d "Color mode" -r -a "none model selected-only"
complete -c go3mfexport -f -n "__fish_seen_subcommand_from export" -l material-type -d "Material type" -r -a "material color"
complete -c go3mfexport -f -n "__fish_seen_subcommand_from export" -l color -d "Export color" -r
complete -c go3mfexport -f -n "__fish_seen_subcommand_from export" -l precision -d "Decimal precision" -r
complete -c go3mfexport -f -n "__fish_seen_subcommand_from export" -l no-metadata -d "Do not write metadata"
complete -c go3mfexport -f -n "__fish_seen_subcommand_from export" -l predictable -d "Sort vertices and triangles"
complete -c go3mfexport -f -n "__fish_seen_subcommand_from export" -l title -d "Document title" -r
complete -c go3mfexport -f -n "__fish_seen_subcommand_from export" -l print-model -d "Print the model XML"
complete -c go3mfexport -f -n "__fish_seen_subcommand_from export" -l open -d "Open the result file in the default application"
complete -c go3mfexport -n "__fish_seen_subcommand_from export" -a "(__fish_complete_suffix .stl)" -d "STL file"
complete -c go3mfexport -n "__fish_seen_subcommand_from export" -a "(__fish_complete_suffix .yaml)" -d "YAML project"
complete -c go3mfexport -n "__fish_seen_subcommand_from export" -a "(__fish_complete_suffix .yml)" -d "YAML project"

# pdf-options command options
complete -c go3mfexport -f -n "__fish_seen_subcommand_from pdf-options" -a "show" -d "Print the persisted PDF options"
complete -c go3mfexport -f -n "__fish_seen_subcommand_from pdf-options" -a "edit" -d "Edit the PDF options interactively"
complete -c go3mfexport -n "__fish_seen_subcommand_from pdf-options" -l settings -d "Settings file" -r
complete -c go3mfexport -f -n "__fish_seen_subcommand_from pdf-options" -l accessible -d "Use the accessible prompt mode"

# completion command options
complete -c go3mfexport -f -n "__fish_seen_subcommand_from completion" -a "bash" -d "Generate bash completion"
complete -c go3mfexport -f -n "__fish_seen_subcommand_from completion" -a "zsh" -d "Generate zsh completion"
complete -c go3mfexport -f -n "__fish_seen_subcommand_from completion" -a "fish" -d "Generate fish completion"

# version command options
complete -c go3mfexport -f -n "__fish_seen_subcommand_from version" -s h -l help -d "Show help"
`

func (c *CompletionCmd) Help() string {
	return `
Generate shell completion scripts for go3mfexport.

Examples:
  # Bash
  go3mfexport completion bash > ~/.local/share/bash-completion/completions/go3mfexport

  # Zsh
  go3mfexport completion zsh > ~/.zsh/completion/_go3mfexport

  # Fish
  go3mfexport completion fish > ~/.config/fish/completions/go3mfexport.fish
`
}
