package embed

// loaderScript is the self-installing embed loader served to third-party
// pages. It creates a container and iframe, suppresses scrollbars across
// rendering engines, keeps the frame sized on resize/load, and exposes a
// small configuration global.
//
// The container is inserted immediately before the including script tag.
// That relies on the script executing synchronously; a host page loading it
// async can instead point data-mount at an element id, which takes
// precedence when present. With neither available the loader warns and
// aborts instead of failing silently.
const loaderScript = `(function () {
  "use strict";

  var script = document.currentScript;
  var mount = null;
  if (script && script.dataset && script.dataset.mount) {
    mount = document.getElementById(script.dataset.mount);
  }
  if (!mount && !(script && script.parentNode)) {
    if (window.console && console.warn) {
      console.warn("{{.GlobalName}}: no insertion point; load the script synchronously or set data-mount");
    }
    return;
  }

  var container = document.createElement("div");
  container.id = "{{.ContainerID}}";
  container.style.width = "100%";
  container.style.height = "100vh";
  container.style.overflow = "hidden";

  var frame = document.createElement("iframe");
  frame.id = "{{.FrameID}}";
  frame.src = "{{.Src}}";
  frame.style.width = "100%";
  frame.style.height = "100%";
  frame.style.border = "0";
  frame.style.overflow = "hidden";
  frame.style.scrollbarWidth = "none";
  frame.style.msOverflowStyle = "none";
  frame.setAttribute("scrolling", "no");

  var style = document.createElement("style");
  style.textContent = "#{{.FrameID}}::-webkit-scrollbar { display: none; }";

  container.appendChild(style);
  container.appendChild(frame);

  if (mount) {
    mount.appendChild(container);
  } else {
    script.parentNode.insertBefore(container, script);
  }

  // Host-page layout shifts can collapse the frame; re-assert full height.
  var restore = function () {
    frame.style.height = "100%";
  };
  window.addEventListener("resize", restore);
  frame.addEventListener("load", restore);

  window.{{.GlobalName}} = {
    configure: function (options) {
      if (!options) {
        return;
      }
      if (typeof options.height === "number") {
        var f = document.getElementById("{{.FrameID}}");
        if (f) {
          f.style.height = options.height + "px";
        }
      }
    }
  };
})();
`
